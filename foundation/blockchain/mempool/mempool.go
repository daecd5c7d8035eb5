// Package mempool maintains the mempool for the blockchain.
package mempool

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
)

// Mempool represents the ordered set of accepted transactions waiting to be
// included in the next block.
type Mempool struct {
	pool []chain.Tx
	mu   sync.RWMutex
}

// New constructs a new, empty mempool.
func New() *Mempool {
	return &Mempool{
		pool: []chain.Tx{},
	}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the end of the pool and returns the new size.
func (mp *Mempool) Add(tx chain.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = []chain.Tx{}
}

// Copy returns a copy of the transactions in the order they were added.
func (mp *Mempool) Copy() []chain.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]chain.Tx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}
