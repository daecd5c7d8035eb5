package state

import (
	"context"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
)

// Status represents a summary of the current state of the node.
type Status struct {
	Length       int     `json:"length"`
	LatestIndex  uint64  `json:"latest_index"`
	LatestHash   string  `json:"latest_hash"`
	Difficulty   uint    `json:"difficulty"`
	Target       string  `json:"target"`
	MempoolCount int     `json:"mempool_count"`
	MiningReward float64 `json:"mining_reward"`
}

// =============================================================================

// Balance returns the current balance for the address, zero when unknown.
func (s *State) Balance(ctx context.Context, address string) (float64, error) {
	return s.store.Balance(ctx, address)
}

// Transactions returns the durable log of accepted transactions.
func (s *State) Transactions(ctx context.Context) ([]store.Entry, error) {
	return s.store.Transactions(ctx)
}

// Wallets returns every registered wallet address.
func (s *State) Wallets(ctx context.Context) ([]string, error) {
	return s.store.Wallets(ctx)
}

// RegisterWallet registers the address with a zero balance if it's new.
func (s *State) RegisterWallet(ctx context.Context, address string) error {
	if err := s.store.RegisterWallet(ctx, address); err != nil {
		return err
	}

	s.evHandler("state: RegisterWallet: wallet[%s]", address)

	return nil
}

// Blocks returns a copy of the entire chain.
func (s *State) Blocks() []chain.Block {
	return s.chain.Blocks()
}

// Mempool returns a copy of the transactions waiting to be mined.
func (s *State) Mempool() []chain.Tx {
	return s.mempool.Copy()
}

// Difficulty returns the current proof of work difficulty.
func (s *State) Difficulty() uint {
	return s.difficulty.Current()
}

// Status returns a summary of the chain, mempool and difficulty.
func (s *State) Status() Status {
	latest := s.chain.Latest()

	return Status{
		Length:       s.chain.Length(),
		LatestIndex:  latest.Index,
		LatestHash:   latest.Hash(),
		Difficulty:   s.difficulty.Current(),
		Target:       s.difficulty.Target().String(),
		MempoolCount: s.mempool.Count(),
		MiningReward: s.miningReward,
	}
}
