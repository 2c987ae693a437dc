// sbox project sbox.go
package sbox

import (
	"fmt"

	"github.com/bgallie/sdes/cryptors/bitops"
)

// SBox maps 4 input bits to a 2-bit value.  Entries are in 0..3.
type SBox [4][4]uint8

var (
	S0 = SBox{
		{1, 0, 3, 2},
		{3, 2, 1, 0},
		{0, 2, 1, 3},
		{3, 1, 3, 2}}

	S1 = SBox{
		{0, 1, 2, 3},
		{2, 0, 1, 3},
		{3, 0, 1, 0},
		{2, 1, 0, 3}}
)

// Lookup substitutes bits4 through box.  The row is taken from the outer
// bits (0 and 3) and the column from the inner bits (1 and 2).
func Lookup(bits4 bitops.Bits, box *SBox) bitops.Bits {
	if len(bits4) != 4 {
		panic(fmt.Errorf("%w: s-box input of %d bits", bitops.ErrLengthMismatch, len(bits4)))
	}
	row := bitops.Bits{bits4[0], bits4[3]}.Uint()
	col := bitops.Bits{bits4[1], bits4[2]}.Uint()
	return bitops.FromUint(uint(box[row][col]), 2)
}
