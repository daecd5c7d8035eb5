package public

import (
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
)

// NewTx is what a client submits to add a transaction.
type NewTx struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Signature string  `json:"signature,omitempty"`
}

// NewWallet is what a client submits to register a wallet.
type NewWallet struct {
	Address string `json:"address" validate:"required"`
}

type status struct {
	Status string `json:"status"`
}

type tx struct {
	Sender        string  `json:"sender"`
	SenderName    string  `json:"sender_name,omitempty"`
	Recipient     string  `json:"recipient"`
	RecipientName string  `json:"recipient_name,omitempty"`
	Amount        float64 `json:"amount"`
}

type entry struct {
	ID uint64 `json:"id"`
	tx
	Timestamp time.Time `json:"timestamp"`
}

type balance struct {
	Address string  `json:"address"`
	Name    string  `json:"name,omitempty"`
	Balance float64 `json:"balance"`
}

type wallet struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type block struct {
	Index        uint64    `json:"index"`
	Timestamp    time.Time `json:"timestamp"`
	Transactions []tx      `json:"transactions"`
	Proof        uint64    `json:"proof"`
	PreviousHash string    `json:"previous_hash"`
	Hash         string    `json:"hash"`
}

type mined struct {
	Message string  `json:"message"`
	Block   block   `json:"block"`
	Reward  float64 `json:"reward"`
	Miner   string  `json:"miner"`
}

type nodeStatus struct {
	state.Status
	Subscribers int `json:"subscribers"`
}

// =============================================================================

func (h Handlers) toTx(t chain.Tx) tx {
	return tx{
		Sender:        t.Sender,
		SenderName:    h.name(t.Sender),
		Recipient:     t.Recipient,
		RecipientName: h.name(t.Recipient),
		Amount:        t.Amount,
	}
}

func (h Handlers) toTxs(trans []chain.Tx) []tx {
	out := make([]tx, len(trans))
	for i, t := range trans {
		out[i] = h.toTx(t)
	}
	return out
}

func (h Handlers) toEntry(e store.Entry) entry {
	return entry{
		ID:        e.ID,
		tx:        h.toTx(chain.Tx{Sender: e.Sender, Recipient: e.Recipient, Amount: e.Amount}),
		Timestamp: e.Timestamp,
	}
}

func (h Handlers) toBlock(b chain.Block) block {
	return block{
		Index:        b.Index,
		Timestamp:    b.Timestamp,
		Transactions: h.toTxs(b.Transactions),
		Proof:        b.Proof,
		PreviousHash: b.PreviousHash,
		Hash:         b.Hash(),
	}
}

// name returns the key file name for the address when it's known.
func (h Handlers) name(address string) string {
	if h.NS == nil {
		return ""
	}

	if name := h.NS.Lookup(address); name != address {
		return name
	}

	return ""
}
