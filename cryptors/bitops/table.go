package bitops

import "fmt"

// Table is an ordered list of 1-based positions into an input sequence.
// Expansion tables may repeat positions.
type Table []int

// NewTable builds a table over inputs of inputLen bits.  A position outside
// 1..inputLen panics, so fixed tables declared at package level fail when
// the program starts rather than when they are first applied.
func NewTable(inputLen int, idx ...int) Table {
	for _, pos := range idx {
		if pos < 1 || pos > inputLen {
			panic(fmt.Errorf("%w: index %d for input of %d bits", ErrIndexRange, pos, inputLen))
		}
	}
	t := make(Table, len(idx))
	copy(t, idx)
	return t
}
