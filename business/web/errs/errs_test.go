package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestTrusted(t *testing.T) {
	t.Log("Given the need to carry client safe errors through a request.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a store error is wrapped as a bad request.", testID)
		{
			err := fmt.Errorf("submitting: %w", errs.BadRequest(store.ErrInsufficientFunds))

			if !errs.IsTrusted(err) {
				t.Fatalf("\t%s\tTest %d:\tShould find the trusted error in the chain.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould find the trusted error in the chain.", success, testID)

			te := errs.GetTrusted(err)
			if te.Status != http.StatusBadRequest || te.Error() != store.ErrInsufficientFunds.Error() {
				t.Fatalf("\t%s\tTest %d:\tShould keep the status and message: %d %q", failed, testID, te.Status, te.Error())
			}
			t.Logf("\t%s\tTest %d:\tShould keep the status and message.", success, testID)

			if !errors.Is(err, store.ErrInsufficientFunds) {
				t.Fatalf("\t%s\tTest %d:\tShould unwrap to the store error.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould unwrap to the store error.", success, testID)

			if errs.GetTrusted(errors.New("boom")) != nil {
				t.Fatalf("\t%s\tTest %d:\tShould not find a trusted error in a plain error.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not find a trusted error in a plain error.", success, testID)
		}
	}
}
