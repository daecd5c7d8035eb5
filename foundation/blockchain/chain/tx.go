package chain

import (
	"errors"
	"fmt"
	"math"
)

// NetworkSender is the distinguished sender used for coinbase style credits.
// Transactions from this sender are not checked against a balance.
const NetworkSender = "Network"

// Set of validation errors for a transaction.
var (
	ErrMissingAddress = errors.New("sender and recipient are required")
	ErrInvalidAmount  = errors.New("amount must be a finite number greater than zero")
)

// =============================================================================

// Tx is the transactional information between two parties.
type Tx struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
}

// NewTx constructs a new transaction and validates the values provided.
func NewTx(sender string, recipient string, amount float64) (Tx, error) {
	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// Validate checks the transaction carries both parties and a positive,
// finite amount.
func (tx Tx) Validate() error {
	if tx.Sender == "" || tx.Recipient == "" {
		return ErrMissingAddress
	}

	// The negated form also rejects NaN.
	if !(tx.Amount > 0) || math.IsInf(tx.Amount, 1) {
		return ErrInvalidAmount
	}

	return nil
}

// IsCoinbase reports whether the transaction comes from the network sender.
func (tx Tx) IsCoinbase() bool {
	return tx.Sender == NetworkSender
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%g", tx.Sender, tx.Recipient, tx.Amount)
}
