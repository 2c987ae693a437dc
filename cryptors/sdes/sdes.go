// Package sdes implements the Simplified Data Encryption Standard, a two
// round Feistel cipher over 8-bit blocks with a 10-bit key.
package sdes

import (
	"fmt"

	"github.com/bgallie/sdes/cryptors/bitops"
	"github.com/bgallie/sdes/cryptors/sbox"
)

// Subkeys holds the round keys derived from a 10-bit key.
type Subkeys struct {
	K1 bitops.Bits
	K2 bitops.Bits
}

// KeySchedule derives K1 and K2 from key10.  key10 must be 10 bits.
func KeySchedule(key10 bitops.Bits) Subkeys {
	mustLen("key", key10, KeyBits)
	left, right := bitops.Permute(key10, p10).Split()

	left = bitops.LeftRotate(left, 1)
	right = bitops.LeftRotate(right, 1)
	k1 := bitops.Permute(bitops.Concat(left, right), p8)

	// K2 continues from the halves already rotated for K1.
	left = bitops.LeftRotate(left, 2)
	right = bitops.LeftRotate(right, 2)
	k2 := bitops.Permute(bitops.Concat(left, right), p8)

	return Subkeys{K1: k1, K2: k2}
}

// F is the round function f_k.  The left half of bits8 is mixed with a
// function of the right half and key8; the right half is passed through.
func F(bits8, key8 bitops.Bits) bitops.Bits {
	mustLen("block", bits8, BlockBits)
	mustLen("round key", key8, BlockBits)
	left, right := bits8.Split()

	mixed := bitops.Xor(bitops.Permute(right, ep), key8)
	m0, m1 := mixed.Split()
	sboxed := bitops.Concat(sbox.Lookup(m0, &sbox.S0), sbox.Lookup(m1, &sbox.S1))

	return bitops.Concat(bitops.Xor(left, bitops.Permute(sboxed, p4)), right)
}

func swap(bits8 bitops.Bits) bitops.Bits {
	left, right := bits8.Split()
	return bitops.Concat(right, left)
}

func rounds(block bitops.Bits, first, second bitops.Bits) bitops.Bits {
	t := bitops.Permute(block, ip)
	t = F(swap(F(t, first)), second)
	return bitops.Permute(t, ipInv)
}

// EncryptBits encrypts an 8-bit block.  A block or key of the wrong length
// panics; see Encrypt for the validating entry point.
func EncryptBits(plaintext, key bitops.Bits) bitops.Bits {
	mustLen("plaintext", plaintext, BlockBits)
	sk := KeySchedule(key)
	return rounds(plaintext, sk.K1, sk.K2)
}

// DecryptBits is EncryptBits with the round keys applied in reverse order.
func DecryptBits(ciphertext, key bitops.Bits) bitops.Bits {
	mustLen("ciphertext", ciphertext, BlockBits)
	sk := KeySchedule(key)
	return rounds(ciphertext, sk.K2, sk.K1)
}

// mustLen guards the bit level API, which is only handed validated input.
func mustLen(what string, b bitops.Bits, n int) {
	if len(b) != n {
		panic(fmt.Errorf("%w: %s of %d bits, want %d", bitops.ErrLengthMismatch, what, len(b), n))
	}
}

// ParseKey validates a 10-character binary key.
func ParseKey(s string) (bitops.Bits, error) {
	return parse("key", s, KeyBits)
}

// ParseBlock validates an 8-character binary block.  field names the value
// in the returned error.
func ParseBlock(field, s string) (bitops.Bits, error) {
	return parse(field, s, BlockBits)
}

func parse(field, s string, n int) (bitops.Bits, error) {
	if len(s) != n {
		return nil, lengthError(field, n, len(s))
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return nil, characterError(field, s[i], i)
		}
	}
	return bitops.MustParse(s), nil
}

// Encrypt encrypts an 8-bit plaintext given as '0'/'1' characters with a
// 10-bit key in the same form.
func Encrypt(plaintext, key string) (string, error) {
	p, k, err := parseArgs("plaintext", plaintext, key)
	if err != nil {
		return "", err
	}
	return EncryptBits(p, k).String(), nil
}

// Decrypt is the inverse of Encrypt.
func Decrypt(ciphertext, key string) (string, error) {
	c, k, err := parseArgs("ciphertext", ciphertext, key)
	if err != nil {
		return "", err
	}
	return DecryptBits(c, k).String(), nil
}

// Keys returns K1 and K2 for a 10-character binary key.
func Keys(key string) (string, string, error) {
	k, err := ParseKey(key)
	if err != nil {
		return "", "", err
	}
	sk := KeySchedule(k)
	return sk.K1.String(), sk.K2.String(), nil
}

func parseArgs(field, block, key string) (bitops.Bits, bitops.Bits, error) {
	b, err := ParseBlock(field, block)
	if err != nil {
		return nil, nil, err
	}
	k, err := ParseKey(key)
	if err != nil {
		return nil, nil, err
	}
	return b, k, nil
}
