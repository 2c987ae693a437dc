// bitops project bitops.go
package bitops

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidBit     = errors.New("bitops: invalid bit")
	ErrIndexRange     = errors.New("bitops: permutation index out of range")
	ErrLengthMismatch = errors.New("bitops: length mismatch")
	ErrRotation       = errors.New("bitops: rotation out of range")
)

// Bits is an ordered sequence of binary digits.  Every element is 0 or 1.
type Bits []uint8

// Parse converts a string of '0' and '1' characters into Bits.
func Parse(s string) (Bits, error) {
	b := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			b[i] = 0
		case '1':
			b[i] = 1
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidBit, s[i], i)
		}
	}
	return b, nil
}

// MustParse is like Parse but panics on error.  Used for fixed values.
func MustParse(s string) Bits {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, v := range b {
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// Split returns the left and right halves of b.
func (b Bits) Split() (Bits, Bits) {
	h := len(b) / 2
	return b[:h:h], b[h:]
}

// Concat joins parts into a newly allocated sequence.
func Concat(parts ...Bits) Bits {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make(Bits, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Permute returns out where out[i] = in[table[i]-1].  The output has the
// length of the table.  Indexes are 1-based and never wrap.
func Permute(in Bits, table Table) Bits {
	out := make(Bits, len(table))
	for i, pos := range table {
		if pos < 1 || pos > len(in) {
			panic(fmt.Errorf("%w: index %d for input of %d bits", ErrIndexRange, pos, len(in)))
		}
		out[i] = in[pos-1]
	}
	return out
}

// LeftRotate moves the first n bits of b to the end.
func LeftRotate(b Bits, n int) Bits {
	if n < 0 || n > len(b) {
		panic(fmt.Errorf("%w: %d for %d bits", ErrRotation, n, len(b)))
	}
	return Concat(b[n:], b[:n])
}

func Xor(a, b Bits) Bits {
	if len(a) != len(b) {
		panic(fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(a), len(b)))
	}
	out := make(Bits, len(a))
	for i := range a {
		if a[i]|b[i] > 1 {
			panic(fmt.Errorf("%w: at position %d", ErrInvalidBit, i))
		}
		out[i] = a[i] ^ b[i]
	}
	return out
}

// FromUint returns the low width bits of v, most significant bit first.
func FromUint(v uint, width int) Bits {
	b := make(Bits, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = uint8(v & 1)
		v >>= 1
	}
	return b
}

// Uint interprets b as an unsigned binary number, most significant bit first.
func (b Bits) Uint() uint {
	var v uint
	for _, bit := range b {
		v = v<<1 | uint(bit)
	}
	return v
}

// FromBytes unpacks the first n bits of ary.
func FromBytes(ary []byte, n uint) Bits {
	b := make(Bits, n)
	for i := uint(0); i < n; i++ {
		if GetBit(ary, i) {
			b[i] = 1
		}
	}
	return b
}

// Bytes packs b into bytes, padding the last byte with zero bits.
func (b Bits) Bytes() []byte {
	ary := make([]byte, (len(b)+7)/8)
	for i, v := range b {
		if v == 1 {
			SetBit(ary, uint(i))
		} else {
			ClrBit(ary, uint(i))
		}
	}
	return ary
}

func FromByte(v byte) Bits {
	return FromBytes([]byte{v}, 8)
}

// Byte packs the first 8 bits of b.
func (b Bits) Byte() byte {
	return b[:8].Bytes()[0]
}

// Bit numbering in the following is most significant bit first, so bit 0
// is the high bit of ary[0].

func SetBit(ary []byte, bit uint) []byte {
	ary[bit>>3] |= 0x80 >> (bit & 7)
	return ary
}

func ClrBit(ary []byte, bit uint) []byte {
	ary[bit>>3] &^= 0x80 >> (bit & 7)
	return ary
}

func GetBit(ary []byte, bit uint) bool {
	return ary[bit>>3]&(0x80>>(bit&7)) != 0
}
