package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// MineResult represents the block produced by a mining operation along with
// the reward paid for it.
type MineResult struct {
	Block  chain.Block `json:"block"`
	Reward float64     `json:"reward"`
	Miner  string      `json:"miner"`
}

// =============================================================================

// Mine solves the proof of work puzzle on top of the latest block, credits the
// miner and seals the mempool into a new block. When another block lands
// while the puzzle is being solved, the search starts again on the new tip.
func (s *State) Mine(ctx context.Context, miner string) (MineResult, error) {
	if miner == "" {
		return MineResult{}, ErrMissingMiner
	}

	for {
		prevBlock := s.chain.Latest()
		diff := s.difficulty.Current()

		s.evHandler("state: Mine: MINING: started: prevBlock[%d]: difficulty[%d]", prevBlock.Index, diff)

		// The search is CPU bound and can take a long time, so it runs
		// without holding the state lock.
		proof := pow.Search(prevBlock.Proof, diff, s.evHandler)

		block, err := s.sealBlock(ctx, miner, prevBlock, proof, diff)
		if err != nil {
			if errors.Is(err, chain.ErrChainConflict) {
				s.evHandler("state: Mine: MINING: tip moved, searching again: %s", err)
				continue
			}

			s.evHandler("state: Mine: MINING: ERROR: %s", err)
			return MineResult{}, err
		}

		s.evHandler("state: Mine: MINING: completed: block[%d]: hash[%s]: trans[%d]", block.Index, block.Hash(), len(block.Transactions))

		mr := MineResult{
			Block:  block,
			Reward: s.miningReward,
			Miner:  miner,
		}

		return mr, nil
	}
}

// sealBlock credits the miner, builds the block from the mempool, appends it
// to the chain and retunes the difficulty. It fails with ErrChainConflict
// when the latest block is no longer the one the proof was found for.
func (s *State) sealBlock(ctx context.Context, miner string, prevBlock chain.Block, proof uint64, diff uint) (chain.Block, error) {
	if !pow.Valid(prevBlock.Proof, proof, diff) {
		return chain.Block{}, fmt.Errorf("%w: proof[%d]: difficulty[%d]", ErrInvalidProof, proof, diff)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if latest := s.chain.Latest(); latest.Index != prevBlock.Index || latest.Hash() != prevBlock.Hash() {
		return chain.Block{}, fmt.Errorf("%w: latest block is %d", chain.ErrChainConflict, latest.Index)
	}

	if err := s.store.RegisterWallet(ctx, miner); err != nil {
		return chain.Block{}, fmt.Errorf("registering miner: %w", err)
	}

	if _, err := s.store.UpdateBalance(ctx, miner, s.miningReward); err != nil {
		return chain.Block{}, fmt.Errorf("crediting mining reward: %w", err)
	}

	s.evHandler("state: Mine: MINING: reward[%g] credited to miner[%s]", s.miningReward, miner)

	block := chain.NewBlock(prevBlock, s.now(), s.mempool.Copy(), proof)
	s.evHandler("state: Mine: MINING: sealing block[%d]: proof[%d]: pow[%s]", block.Index, proof, pow.Hash(prevBlock.Proof, proof))

	if err := s.chain.Append(block); err != nil {
		return chain.Block{}, fmt.Errorf("appending block: %w", err)
	}

	s.mempool.Truncate()

	next := s.difficulty.Retune(s.chain.Tail(2))
	s.evHandler("state: Mine: MINING: difficulty[%d]", next)

	return block, nil
}
