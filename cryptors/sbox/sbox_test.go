package sbox_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bgallie/sdes/cryptors/bitops"
	"github.com/bgallie/sdes/cryptors/sbox"
)

func TestLookup_S0(t *testing.T) {
	want := map[string]string{
		"0000": "01", "0001": "11", "0010": "00", "0011": "10",
		"0100": "11", "0101": "01", "0110": "10", "0111": "00",
		"1000": "00", "1001": "11", "1010": "10", "1011": "01",
		"1100": "01", "1101": "11", "1110": "11", "1111": "10",
	}
	for in, out := range want {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, out, sbox.Lookup(bitops.MustParse(in), &sbox.S0).String())
		})
	}
}

func TestLookup_S1(t *testing.T) {
	want := map[string]string{
		"0000": "00", "0001": "10", "0010": "01", "0011": "00",
		"0100": "10", "0101": "01", "0110": "11", "0111": "11",
		"1000": "11", "1001": "10", "1010": "00", "1011": "01",
		"1100": "01", "1101": "00", "1110": "00", "1111": "11",
	}
	for in, out := range want {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, out, sbox.Lookup(bitops.MustParse(in), &sbox.S1).String())
		})
	}
}

func TestLookup_OuterInnerBits(t *testing.T) {
	// row 1 (outer bits 0..1), column 0: not the naive first-two/last-two split
	assert.Equal(t, "11", sbox.Lookup(bitops.MustParse("0001"), &sbox.S0).String())
	assert.Equal(t, uint8(3), sbox.S0[1][0])
	assert.Equal(t, uint8(2), sbox.S0[0][3])
}

func TestLookup_BadLength(t *testing.T) {
	assert.PanicsWithError(t,
		"bitops: length mismatch: s-box input of 3 bits",
		func() { sbox.Lookup(bitops.MustParse("101"), &sbox.S0) },
	)
}
