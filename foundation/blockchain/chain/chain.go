// Package chain maintains the ordered, append-only sequence of blocks along
// with the transaction and block types that live inside of it.
package chain

import (
	"errors"
	"fmt"
	"sync"
)

// ErrChainConflict is returned by Append when the block was not built on top
// of the current latest block.
var ErrChainConflict = errors.New("block does not extend the latest block")

// =============================================================================

// Chain represents the in memory blockchain. It is never persisted.
type Chain struct {
	mu     sync.RWMutex
	blocks []Block
}

// New constructs a chain holding only the specified genesis block.
func New(genesis Block) *Chain {
	return &Chain{
		blocks: []Block{genesis.clone()},
	}
}

// Reset re-initializes the chain back to the specified genesis block.
func (c *Chain) Reset(genesis Block) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.blocks = []Block{genesis.clone()}
}

// Append adds the block to the end of the chain. The block must reference the
// hash of the latest block and carry the next index, which makes this a
// compare and swap on the latest block.
func (c *Chain) Append(block Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	latest := c.blocks[len(c.blocks)-1]

	if block.Index != latest.Index+1 {
		return fmt.Errorf("%w: got index %d, exp %d", ErrChainConflict, block.Index, latest.Index+1)
	}

	if hash := latest.Hash(); block.PreviousHash != hash {
		return fmt.Errorf("%w: got previous hash %s, exp %s", ErrChainConflict, block.PreviousHash, hash)
	}

	c.blocks = append(c.blocks, block.clone())

	return nil
}

// Latest returns a copy of the latest block in the chain.
func (c *Chain) Latest() Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.blocks[len(c.blocks)-1].clone()
}

// Length returns the number of blocks in the chain, genesis included.
func (c *Chain) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.blocks)
}

// Blocks returns a copy of every block in the chain.
func (c *Chain) Blocks() []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Block, len(c.blocks))
	for i, block := range c.blocks {
		out[i] = block.clone()
	}

	return out
}

// Tail returns a copy of the last n blocks in chain order. Fewer blocks are
// returned when the chain is not long enough.
func (c *Chain) Tail(n int) []Block {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case n <= 0:
		return nil
	case n > len(c.blocks):
		n = len(c.blocks)
	}

	out := make([]Block, 0, n)
	for _, block := range c.blocks[len(c.blocks)-n:] {
		out = append(out, block.clone())
	}

	return out
}
