package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/app/tooling/admin/commands"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestCommands(t *testing.T) {
	strg, err := store.New(store.Config{Path: store.Memory})
	if err != nil {
		t.Fatalf("Should be able to open the store: %v", err)
	}
	defer strg.Close()

	ctx := context.Background()

	t.Log("Given the need to administer a store offline.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen crediting and inspecting wallets.", testID)
		{
			var buf bytes.Buffer

			if err := strg.RegisterWallet(ctx, "Alice"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to register a wallet: %v", failed, testID, err)
			}

			if err := commands.Credit(ctx, &buf, strg, "Alice", "12.5"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to credit a wallet: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould be able to credit a wallet.", success, testID)

			if err := commands.Credit(ctx, &buf, strg, "Alice", "lots"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould reject a value that isn't a number.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a value that isn't a number.", success, testID)

			for _, value := range []string{"Inf", "+Inf", "NaN"} {
				if err := commands.Credit(ctx, &buf, strg, "Alice", value); err == nil {
					t.Fatalf("\t%s\tTest %d:\tShould reject the value %q.", failed, testID, value)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould reject values that aren't finite.", success, testID)

			buf.Reset()
			if err := commands.Balances(ctx, &buf, strg, ""); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to print balances: %v", failed, testID, err)
			}
			if !strings.Contains(buf.String(), "Alice") || !strings.Contains(buf.String(), "12.5") {
				t.Fatalf("\t%s\tTest %d:\tShould print the balance:\n%s", failed, testID, buf.String())
			}
			t.Logf("\t%s\tTest %d:\tShould print the balance.", success, testID)

			buf.Reset()
			if err := commands.Transactions(ctx, &buf, strg, "bob"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to print transactions: %v", failed, testID, err)
			}
			if strings.Contains(buf.String(), "Alice") {
				t.Fatalf("\t%s\tTest %d:\tShould only print entries for the address:\n%s", failed, testID, buf.String())
			}

			buf.Reset()
			if err := commands.Transactions(ctx, &buf, strg, "alice"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to print transactions: %v", failed, testID, err)
			}
			if !strings.Contains(buf.String(), "Network") {
				t.Fatalf("\t%s\tTest %d:\tShould print the minted entry:\n%s", failed, testID, buf.String())
			}
			t.Logf("\t%s\tTest %d:\tShould filter the transaction log by address.", success, testID)
		}
	}
}
