package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// Verifier represents the behavior required to check a transaction was
// authorized by its sender before it's accepted.
type Verifier interface {
	Verify(tx chain.Tx, sig string) error
}

// TrustAll accepts every transaction regardless of signature.
type TrustAll struct{}

// Verify implements the Verifier interface.
func (TrustAll) Verify(tx chain.Tx, sig string) error {
	return nil
}

// ECDSA requires the transaction be signed by the private key that owns the
// sender address.
type ECDSA struct{}

// Verify implements the Verifier interface.
func (ECDSA) Verify(tx chain.Tx, sig string) error {
	if tx.IsCoinbase() {
		return ErrNetworkSender
	}

	if sig == "" {
		return ErrMissingSignature
	}

	return signature.VerifyFrom(tx, tx.Sender, sig)
}
