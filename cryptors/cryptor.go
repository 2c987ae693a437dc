// cyptor
package cryptors

// CypherBlockBytes is the largest chunk a machine processes at once.
const CypherBlockBytes = 2048

// CypherBlock is the data processed by the crypters.  It consists of the
// number of bytes to process and the data to process.  A block with a zero
// length shuts a machine down.
type CypherBlock struct {
	Length      int
	CypherBlock [CypherBlockBytes]byte
}

// Data returns the part of the block that holds data.
func (blk *CypherBlock) Data() []byte {
	return blk.CypherBlock[:blk.Length]
}

// Crypter transforms a block in place.  ApplyF encrypts, ApplyG undoes ApplyF.
type Crypter interface {
	ApplyF(*CypherBlock) *CypherBlock
	ApplyG(*CypherBlock) *CypherBlock
}

func Encrypt(ecm Crypter, blk *CypherBlock) *CypherBlock {
	return ecm.ApplyF(blk)
}

func Decrypt(ecm Crypter, blk *CypherBlock) *CypherBlock {
	return ecm.ApplyG(blk)
}

func EncryptMachine(ecm Crypter, left chan CypherBlock) chan CypherBlock {
	right := make(chan CypherBlock)
	go func(ecm Crypter, left chan CypherBlock, right chan CypherBlock) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			ecm.ApplyF(&inp)
			right <- inp
		}
	}(ecm, left, right)

	return right
}

func DecryptMachine(ecm Crypter, left chan CypherBlock) chan CypherBlock {
	right := make(chan CypherBlock)
	go func(ecm Crypter, left chan CypherBlock, right chan CypherBlock) {
		for {
			inp := <-left
			if inp.Length <= 0 {
				right <- inp
				break
			}

			ecm.ApplyG(&inp)
			right <- inp
		}
	}(ecm, left, right)

	return right
}

// CreateEncryptMachine chains one encrypt stage per crypter.  Blocks sent
// on left come out of right after passing through every stage in order.
func CreateEncryptMachine(ecms ...Crypter) (left chan CypherBlock, right chan CypherBlock) {
	if len(ecms) == 0 {
		panic("you must give at least one encryption device!")
	}

	left = make(chan CypherBlock)
	right = EncryptMachine(ecms[0], left)

	for idx := 1; idx < len(ecms); idx++ {
		right = EncryptMachine(ecms[idx], right)
	}

	return
}

// CreateDecryptMachine chains the crypters in reverse order so that it
// undoes a machine built by CreateEncryptMachine with the same crypters.
func CreateDecryptMachine(ecms ...Crypter) (left chan CypherBlock, right chan CypherBlock) {
	if len(ecms) == 0 {
		panic("you must give at least one decryption device!")
	}

	idx := len(ecms) - 1
	left = make(chan CypherBlock)
	right = DecryptMachine(ecms[idx], left)

	for idx--; idx >= 0; idx-- {
		right = DecryptMachine(ecms[idx], right)
	}

	return
}
