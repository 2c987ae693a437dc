package sdes

import (
	"fmt"

	"github.com/bgallie/sdes/cryptors"
	"github.com/bgallie/sdes/cryptors/bitops"
)

// Cipher applies S-DES to byte data.  Every byte is an independent block:
// there is no chaining between bytes and no padding.
type Cipher struct {
	keys Subkeys
}

// NewCipher returns a Cipher for a 10-bit key.
func NewCipher(key bitops.Bits) (*Cipher, error) {
	if len(key) != KeyBits {
		return nil, lengthError("key", KeyBits, len(key))
	}
	for i, b := range key {
		if b > 1 {
			return nil, characterError("key", '0'+b, i)
		}
	}
	return &Cipher{keys: KeySchedule(key)}, nil
}

// BlockSize returns the block size in bytes.
func (c *Cipher) BlockSize() int {
	return 1
}

func (c *Cipher) EncryptByte(b byte) byte {
	return rounds(bitops.FromByte(b), c.keys.K1, c.keys.K2).Byte()
}

func (c *Cipher) DecryptByte(b byte) byte {
	return rounds(bitops.FromByte(b), c.keys.K2, c.keys.K1).Byte()
}

// Encrypt encrypts src into dst, which may overlap.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(dst) < len(src) {
		panic(fmt.Sprintf("sdes: output of %d bytes smaller than input of %d", len(dst), len(src)))
	}
	for i, b := range src {
		dst[i] = c.EncryptByte(b)
	}
}

// Decrypt decrypts src into dst, which may overlap.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(dst) < len(src) {
		panic(fmt.Sprintf("sdes: output of %d bytes smaller than input of %d", len(dst), len(src)))
	}
	for i, b := range src {
		dst[i] = c.DecryptByte(b)
	}
}

func (c *Cipher) ApplyF(blk *cryptors.CypherBlock) *cryptors.CypherBlock {
	data := blk.Data()
	c.Encrypt(data, data)
	return blk
}

func (c *Cipher) ApplyG(blk *cryptors.CypherBlock) *cryptors.CypherBlock {
	data := blk.Data()
	c.Decrypt(data, data)
	return blk
}

var _ cryptors.Crypter = (*Cipher)(nil)
