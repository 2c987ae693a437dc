package sdes

import "github.com/bgallie/sdes/cryptors/bitops"

const (
	BlockBits = 8
	KeyBits   = 10
	halfBits  = BlockBits / 2
)

// Permutation tables.  Positions are 1-based; ep repeats positions because
// it expands 4 bits to 8.  They are only read after package init.
var (
	ip    = bitops.NewTable(BlockBits, 2, 6, 3, 1, 4, 8, 5, 7)
	ipInv = bitops.NewTable(BlockBits, 4, 1, 3, 5, 7, 2, 8, 6)
	ep    = bitops.NewTable(halfBits, 4, 1, 2, 3, 2, 3, 4, 1)
	p4    = bitops.NewTable(halfBits, 2, 4, 3, 1)
	p10   = bitops.NewTable(KeyBits, 3, 5, 2, 7, 4, 10, 1, 9, 8, 6)
	p8    = bitops.NewTable(KeyBits, 6, 3, 7, 4, 8, 5, 10, 9)
)
