package state

import "errors"

// Set of error variables for the state.
var (
	ErrMissingStore     = errors.New("a ledger store is required")
	ErrMissingMiner     = errors.New("miner address is required")
	ErrMissingSignature = errors.New("transaction signature is required")
	ErrInvalidProof     = errors.New("proof does not solve the puzzle for the previous block")
	ErrNetworkSender    = errors.New("network transactions can't be submitted with signature verification enabled")
)
