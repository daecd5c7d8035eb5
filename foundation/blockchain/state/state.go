// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"context"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/difficulty"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
)

// DefaultMiningReward is the amount credited to a miner when no reward
// is configured.
const DefaultMiningReward = 50

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// Storer represents the behavior required of the ledger store.
type Storer interface {
	Balance(ctx context.Context, address string) (float64, error)
	RegisterWallet(ctx context.Context, address string) error
	UpdateBalance(ctx context.Context, address string, delta float64) (float64, error)
	AddTransaction(ctx context.Context, sender string, recipient string, amount float64) (store.Entry, error)
	Mint(ctx context.Context, sender string, recipient string, amount float64) (store.Entry, error)
	Transactions(ctx context.Context) ([]store.Entry, error)
	Wallets(ctx context.Context) ([]string, error)
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Store        Storer
	Difficulty   difficulty.Config
	MiningReward float64
	Verifier     Verifier
	EvHandler    EventHandler
	Now          func() time.Time
}

// State manages the chain, the mempool and the ledger store.
type State struct {
	mu sync.Mutex

	store        Storer
	chain        *chain.Chain
	mempool      *mempool.Mempool
	difficulty   *difficulty.Controller
	miningReward float64
	verifier     Verifier
	evHandler    EventHandler
	now          func() time.Time
	genesis      chain.Block
}

// New constructs the ledger state with a chain holding only the genesis block
// and an empty mempool.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if cfg.Store == nil {
		return nil, ErrMissingStore
	}

	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	reward := cfg.MiningReward
	if reward == 0 {
		reward = DefaultMiningReward
	}

	verifier := cfg.Verifier
	if verifier == nil {
		verifier = TrustAll{}
	}

	genesis := chain.Genesis(now())

	state := State{
		store:        cfg.Store,
		chain:        chain.New(genesis),
		mempool:      mempool.New(),
		difficulty:   difficulty.New(cfg.Difficulty),
		miningReward: reward,
		verifier:     verifier,
		evHandler:    ev,
		now:          now,
		genesis:      genesis,
	}

	ev("state: New: genesis[%s]: difficulty[%d]: reward[%g]", genesis.Hash(), state.difficulty.Current(), reward)

	return &state, nil
}

// Reset puts the chain back to the genesis block, empties the mempool and
// returns the difficulty to its initial value. The ledger store is not
// touched.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chain.Reset(s.genesis)
	s.mempool.Truncate()
	s.difficulty.Reset()

	s.evHandler("state: Reset: chain, mempool and difficulty reset")
}
