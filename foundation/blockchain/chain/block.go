package chain

import (
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// Values that define the fixed genesis block.
const (
	GenesisIndex        = 1
	GenesisProof        = 100
	GenesisPreviousHash = "0"
)

// =============================================================================

// Block represents a group of transactions batched together and sealed with
// the proof of work that was found for it.
type Block struct {
	Index        uint64    `json:"index"`         // Position in the chain, starting at 1.
	Timestamp    time.Time `json:"timestamp"`     // Time the block was sealed.
	Transactions []Tx      `json:"transactions"`  // Transactions taken from the pool.
	Proof        uint64    `json:"proof"`         // Nonce that solved the proof of work.
	PreviousHash string    `json:"previous_hash"` // Hash of the prior block, "0" for genesis.
}

// Genesis constructs the genesis block for a new chain.
func Genesis(now time.Time) Block {
	return Block{
		Index:        GenesisIndex,
		Timestamp:    now,
		Transactions: []Tx{},
		Proof:        GenesisProof,
		PreviousHash: GenesisPreviousHash,
	}
}

// NewBlock seals a block on top of the previous block. The transactions are
// copied so later changes to the caller's slice are not visible.
func NewBlock(prevBlock Block, now time.Time, trans []Tx, proof uint64) Block {
	return Block{
		Index:        prevBlock.Index + 1,
		Timestamp:    now,
		Transactions: copyTrans(trans),
		Proof:        proof,
		PreviousHash: prevBlock.Hash(),
	}
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() string {
	return signature.Hash(b)
}

// clone returns a copy of the block that shares no memory with the original.
func (b Block) clone() Block {
	b.Transactions = copyTrans(b.Transactions)
	return b
}

// =============================================================================

// copyTrans returns a copy of the transactions, never nil.
func copyTrans(trans []Tx) []Tx {
	cpy := make([]Tx, len(trans))
	copy(cpy, trans)
	return cpy
}
