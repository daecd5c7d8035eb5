package validate_test

import (
	"testing"

	"github.com/ardanlabs/ledger/business/sys/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type newTx struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
}

func TestCheck(t *testing.T) {
	type table struct {
		name   string
		val    newTx
		fields []string
	}

	tt := []table{
		{name: "valid", val: newTx{Sender: "Alice", Recipient: "Bob", Amount: 1}},
		{name: "empty", val: newTx{}, fields: []string{"sender", "recipient", "amount"}},
		{name: "negative", val: newTx{Sender: "Alice", Recipient: "Bob", Amount: -1}, fields: []string{"amount"}},
	}

	t.Log("Given the need to validate request models.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen checking a %s model.", testID, tst.name)
				{
					err := validate.Check(tst.val)

					if len(tst.fields) == 0 {
						if err != nil {
							t.Fatalf("\t%s\tTest %d:\tShould pass validation: %v", failed, testID, err)
						}
						t.Logf("\t%s\tTest %d:\tShould pass validation.", success, testID)
						return
					}

					fe := validate.GetFieldErrors(err)
					if fe == nil {
						t.Fatalf("\t%s\tTest %d:\tShould get back field errors: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get back field errors.", success, testID)

					if len(fe) != len(tst.fields) {
						t.Fatalf("\t%s\tTest %d:\tShould get %d field errors: %v", failed, testID, len(tst.fields), fe)
					}
					for _, field := range tst.fields {
						if _, exists := fe[field]; !exists {
							t.Fatalf("\t%s\tTest %d:\tShould use the json name %q: %v", failed, testID, field, fe)
						}
					}
					t.Logf("\t%s\tTest %d:\tShould use the json field names.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}
