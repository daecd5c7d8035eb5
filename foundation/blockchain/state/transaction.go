package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
)

// Result represents the outcome of submitting a transaction. A rejected
// transaction is an ordinary result, not an error.
type Result struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

func rejected(err error) Result {
	return Result{Reason: err.Error()}
}

// =============================================================================

// SubmitTransaction validates the transaction and, when accepted, records it
// in the ledger store and adds it to the mempool. An error is only returned
// for an unexpected storage failure.
func (s *State) SubmitTransaction(ctx context.Context, tx chain.Tx, sig string) (Result, error) {
	if err := tx.Validate(); err != nil {
		s.evHandler("state: SubmitTransaction: REJECTED: tx[%s]: %s", tx, err)
		return rejected(err), nil
	}

	if err := s.verifier.Verify(tx, sig); err != nil {
		s.evHandler("state: SubmitTransaction: REJECTED: tx[%s]: %s", tx, err)
		return rejected(err), nil
	}

	// The store write and the mempool add happen as one step relative to
	// mining, so a committed transaction is never lost by a concurrent clear.
	s.mu.Lock()
	defer s.mu.Unlock()

	if tx.IsCoinbase() {
		if _, err := s.store.Mint(ctx, tx.Sender, tx.Recipient, tx.Amount); err != nil {
			s.evHandler("state: SubmitTransaction: ERROR: tx[%s]: %s", tx, err)
			return Result{}, fmt.Errorf("minting: %w", err)
		}
	} else {
		balance, err := s.store.Balance(ctx, tx.Sender)
		if err != nil {
			s.evHandler("state: SubmitTransaction: ERROR: tx[%s]: %s", tx, err)
			return Result{}, fmt.Errorf("checking balance: %w", err)
		}

		if balance < tx.Amount {
			err := fmt.Errorf("%w: %s has %g", store.ErrInsufficientFunds, tx.Sender, balance)
			s.evHandler("state: SubmitTransaction: REJECTED: tx[%s]: %s", tx, err)
			return rejected(err), nil
		}

		if _, err := s.store.AddTransaction(ctx, tx.Sender, tx.Recipient, tx.Amount); err != nil {
			if errors.Is(err, store.ErrInsufficientFunds) {
				s.evHandler("state: SubmitTransaction: REJECTED: tx[%s]: %s", tx, err)
				return rejected(store.ErrInsufficientFunds), nil
			}

			s.evHandler("state: SubmitTransaction: ERROR: tx[%s]: %s", tx, err)
			return Result{}, fmt.Errorf("adding transaction: %w", err)
		}
	}

	n := s.mempool.Add(tx)

	s.evHandler("state: SubmitTransaction: ACCEPTED: tx[%s]: mempool[%d]", tx, n)

	return Result{Accepted: true}, nil
}
