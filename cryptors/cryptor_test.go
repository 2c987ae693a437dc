package cryptors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bgallie/sdes/cryptors"
	"github.com/bgallie/sdes/cryptors/bitops"
	"github.com/bgallie/sdes/cryptors/sdes"
)

// adder is a toy crypter whose stages do not commute with an S-DES stage.
type adder byte

func (a adder) ApplyF(blk *cryptors.CypherBlock) *cryptors.CypherBlock {
	data := blk.Data()
	for i := range data {
		data[i] += byte(a)
	}
	return blk
}

func (a adder) ApplyG(blk *cryptors.CypherBlock) *cryptors.CypherBlock {
	data := blk.Data()
	for i := range data {
		data[i] -= byte(a)
	}
	return blk
}

func newBlock(data []byte) cryptors.CypherBlock {
	var blk cryptors.CypherBlock
	blk.Length = copy(blk.CypherBlock[:], data)
	return blk
}

func TestMachine_RoundTrip(t *testing.T) {
	c, err := sdes.NewCipher(bitops.MustParse("1010000010"))
	require.NoError(t, err)
	plain := []byte("the quick brown fox")

	encLeft, encRight := cryptors.CreateEncryptMachine(adder(3), c)
	decLeft, decRight := cryptors.CreateDecryptMachine(adder(3), c)

	encLeft <- newBlock(plain)
	sealed := <-encRight
	assert.Equal(t, len(plain), sealed.Length)
	assert.NotEqual(t, plain, sealed.Data())

	decLeft <- sealed
	opened := <-decRight
	assert.Equal(t, plain, opened.Data())

	// a zero length block shuts both machines down and is passed through
	encLeft <- cryptors.CypherBlock{}
	assert.Equal(t, 0, (<-encRight).Length)
	decLeft <- cryptors.CypherBlock{}
	assert.Equal(t, 0, (<-decRight).Length)
}

func TestMachine_StageOrder(t *testing.T) {
	c, err := sdes.NewCipher(bitops.MustParse("1010000010"))
	require.NoError(t, err)

	left, right := cryptors.CreateEncryptMachine(adder(1), c)
	left <- newBlock([]byte{0xbc})
	got := <-right
	// 0xbc+1 = 0xbd, which encrypts to 0x75
	assert.Equal(t, []byte{0x75}, got.Data())
	left <- cryptors.CypherBlock{}
	<-right
}

func TestEncryptDecryptHelpers(t *testing.T) {
	blk := newBlock([]byte{1, 2, 3})
	cryptors.Encrypt(adder(5), &blk)
	assert.Equal(t, []byte{6, 7, 8}, blk.Data())
	cryptors.Decrypt(adder(5), &blk)
	assert.Equal(t, []byte{1, 2, 3}, blk.Data())
}

func TestCreateMachine_NoDevices(t *testing.T) {
	assert.Panics(t, func() { cryptors.CreateEncryptMachine() })
	assert.Panics(t, func() { cryptors.CreateDecryptMachine() })
}
