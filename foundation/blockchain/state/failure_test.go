package state_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/difficulty"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
)

var errDisk = errors.New("disk gone")

// faultyStore is a real store that fails the named operations.
type faultyStore struct {
	*store.Store
	fail map[string]bool
}

func (fs *faultyStore) Balance(ctx context.Context, address string) (float64, error) {
	if fs.fail["Balance"] {
		return 0, errDisk
	}
	return fs.Store.Balance(ctx, address)
}

func (fs *faultyStore) UpdateBalance(ctx context.Context, address string, delta float64) (float64, error) {
	if fs.fail["UpdateBalance"] {
		return 0, errDisk
	}
	return fs.Store.UpdateBalance(ctx, address, delta)
}

func (fs *faultyStore) AddTransaction(ctx context.Context, sender string, recipient string, amount float64) (store.Entry, error) {
	if fs.fail["AddTransaction"] {
		return store.Entry{}, errDisk
	}
	return fs.Store.AddTransaction(ctx, sender, recipient, amount)
}

func (fs *faultyStore) Mint(ctx context.Context, sender string, recipient string, amount float64) (store.Entry, error) {
	if fs.fail["Mint"] {
		return store.Entry{}, errDisk
	}
	return fs.Store.Mint(ctx, sender, recipient, amount)
}

func newFaultyState(t *testing.T) (*state.State, *faultyStore) {
	t.Helper()

	strg, err := store.New(store.Config{Path: store.Memory})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to open the store: %v", failed, err)
	}
	t.Cleanup(func() { strg.Close() })

	fs := faultyStore{
		Store: strg,
		fail:  make(map[string]bool),
	}

	st, err := state.New(state.Config{
		Store:      &fs,
		Difficulty: difficulty.Config{Initial: 2, Target: time.Hour},
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}

	return st, &fs
}

// =============================================================================

func TestRewardFailure(t *testing.T) {
	t.Log("Given the need to abort a mine when the reward can't be paid.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the store fails to credit the miner.", testID)
		{
			ctx := context.Background()
			st, fs := newFaultyState(t)

			submit(t, st, chain.NetworkSender, "Alice", 10)
			before := st.Status()

			fs.fail["UpdateBalance"] = true

			_, err := st.Mine(ctx, "Miner1")
			if !errors.Is(err, errDisk) {
				t.Fatalf("\t%s\tTest %d:\tShould get back the storage failure: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get back the storage failure.", success, testID)

			if blocks := st.Blocks(); len(blocks) != 1 || blocks[0].Index != chain.GenesisIndex {
				t.Fatalf("\t%s\tTest %d:\tShould not append a block: %d blocks", failed, testID, len(blocks))
			}
			t.Logf("\t%s\tTest %d:\tShould not append a block.", success, testID)

			after := st.Status()
			if after.MempoolCount != 1 || after.Difficulty != before.Difficulty || after.LatestHash != before.LatestHash {
				t.Fatalf("\t%s\tTest %d:\tShould leave the mempool and difficulty alone: %+v", failed, testID, after)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the mempool and difficulty alone.", success, testID)

			if bal, _ := st.Balance(ctx, "Miner1"); bal != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould not pay the miner: %g", failed, testID, bal)
			}
			t.Logf("\t%s\tTest %d:\tShould not pay the miner.", success, testID)

			fs.fail["UpdateBalance"] = false

			mr, err := st.Mine(ctx, "Miner1")
			if err != nil || mr.Block.Index != 2 || len(mr.Block.Transactions) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould mine the pending transaction once the store recovers: %+v %v", failed, testID, mr, err)
			}
			t.Logf("\t%s\tTest %d:\tShould mine the pending transaction once the store recovers.", success, testID)

			if after := st.Status(); after.Target != time.Hour.String() {
				t.Fatalf("\t%s\tTest %d:\tShould report the target interval: %q", failed, testID, after.Target)
			}
			t.Logf("\t%s\tTest %d:\tShould report the target interval.", success, testID)
		}
	}
}

func TestSubmitStorageFailure(t *testing.T) {
	type table struct {
		name string
		fail string
		tx   chain.Tx
	}

	tt := []table{
		{name: "mint", fail: "Mint", tx: chain.Tx{Sender: chain.NetworkSender, Recipient: "Bob", Amount: 5}},
		{name: "balance", fail: "Balance", tx: chain.Tx{Sender: "Alice", Recipient: "Bob", Amount: 5}},
		{name: "addtransaction", fail: "AddTransaction", tx: chain.Tx{Sender: "Alice", Recipient: "Bob", Amount: 5}},
	}

	t.Log("Given the need to report storage failures when submitting transactions.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen %s fails.", testID, tst.fail)
				{
					ctx := context.Background()
					st, fs := newFaultyState(t)

					submit(t, st, chain.NetworkSender, "Alice", 10)

					fs.fail[tst.fail] = true

					res, err := st.SubmitTransaction(ctx, tst.tx, "")
					if !errors.Is(err, errDisk) {
						t.Fatalf("\t%s\tTest %d:\tShould get back the storage failure: %v", failed, testID, err)
					}
					if res.Accepted {
						t.Fatalf("\t%s\tTest %d:\tShould not accept the transaction.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the storage failure.", success, testID)

					if n := len(st.Mempool()); n != 1 {
						t.Fatalf("\t%s\tTest %d:\tShould leave the mempool unchanged: %d", failed, testID, n)
					}
					t.Logf("\t%s\tTest %d:\tShould leave the mempool unchanged.", success, testID)

					fs.fail[tst.fail] = false

					entries, err := st.Transactions(ctx)
					if err != nil || len(entries) != 1 {
						t.Fatalf("\t%s\tTest %d:\tShould not log the failed transaction: %d %v", failed, testID, len(entries), err)
					}
					t.Logf("\t%s\tTest %d:\tShould not log the failed transaction.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}
