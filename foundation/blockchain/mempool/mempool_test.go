package mempool_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCRUD(t *testing.T) {
	type table struct {
		name string
		txs  []chain.Tx
	}

	tt := []table{
		{
			name: "basic",
			txs: []chain.Tx{
				{Sender: "Network", Recipient: "Alice", Amount: 100},
				{Sender: "Alice", Recipient: "Bob", Amount: 30},
				{Sender: "Bob", Recipient: "Carol", Amount: 10},
				{Sender: "Alice", Recipient: "Carol", Amount: 5.5},
			},
		},
	}

	t.Log("Given the need to validate mempool api.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a set of transaction.", testID)
			{
				f := func(t *testing.T) {
					mp := mempool.New()

					for i, tx := range tst.txs {
						if n := mp.Add(tx); n != i+1 {
							t.Fatalf("\t%s\tTest %d:\tShould be able to add new transaction: got size %d", failed, testID, n)
						}
						t.Logf("\t%s\tTest %d:\tShould be able to add new transaction: %s", success, testID, tx)
					}

					for i, tx := range mp.Copy() {
						if tx != tst.txs[i] {
							t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, tx)
							t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.txs[i])
							t.Fatalf("\t%s\tTest %d:\tShould get back transactions in insertion order.", failed, testID)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould get back transactions in insertion order.", success, testID)

					cpy := mp.Copy()
					cpy[0].Amount = 1
					if mp.Copy()[0].Amount != tst.txs[0].Amount {
						t.Fatalf("\t%s\tTest %d:\tShould not share memory with a copy.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould not share memory with a copy.", success, testID)

					if n := mp.Count(); n != len(tst.txs) {
						t.Fatalf("\t%s\tTest %d:\tShould be able to count the transactions: %d", failed, testID, n)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to count the transactions.", success, testID)

					mp.Truncate()
					if l := len(mp.Copy()); l != 0 || mp.Count() != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould be able to truncate mempool.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to truncate mempool.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}
