// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/business/sys/metrics"
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// SubmitTransaction validates the transaction and adds it to the ledger and
// the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nt NewTx
	if err := web.Decode(r, &nt); err != nil {
		return errs.BadRequest(err)
	}

	if err := validate.Check(nt); err != nil {
		return err
	}

	tx := chain.Tx{
		Sender:    nt.Sender,
		Recipient: nt.Recipient,
		Amount:    nt.Amount,
	}

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)

	res, err := h.State.SubmitTransaction(ctx, tx, nt.Signature)
	if err != nil {
		return fmt.Errorf("submitting transaction: %w", err)
	}

	metrics.AddTransaction(ctx, res.Accepted)

	if !res.Accepted {
		return errs.BadRequest(errors.New(res.Reason))
	}

	return web.Respond(ctx, w, status{Status: "transaction added to mempool"}, http.StatusOK)
}

// Transactions returns the durable log of accepted transactions.
func (h Handlers) Transactions(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	entries, err := h.State.Transactions(ctx)
	if err != nil {
		return err
	}

	out := make([]entry, len(entries))
	for i, e := range entries {
		out[i] = h.toEntry(e)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// Mempool returns the set of transactions waiting to be mined.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.toTxs(h.State.Mempool()), http.StatusOK)
}

// Balance returns the current balance for the specified address.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	bal, err := h.State.Balance(ctx, address)
	if err != nil {
		return err
	}

	resp := balance{
		Address: address,
		Name:    h.name(address),
		Balance: bal,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Wallets returns the set of registered wallets.
func (h Handlers) Wallets(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	addresses, err := h.State.Wallets(ctx)
	if err != nil {
		return err
	}

	out := make([]wallet, len(addresses))
	for i, address := range addresses {
		out[i] = wallet{
			Address: address,
			Name:    h.name(address),
		}
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// RegisterWallet registers the address with a zero balance.
func (h Handlers) RegisterWallet(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nw NewWallet
	if err := web.Decode(r, &nw); err != nil {
		return errs.BadRequest(err)
	}

	if err := validate.Check(nw); err != nil {
		return err
	}

	if err := h.State.RegisterWallet(ctx, nw.Address); err != nil {
		return storeErr(err)
	}

	return web.Respond(ctx, w, status{Status: "wallet registered"}, http.StatusOK)
}

// Mine solves the proof of work puzzle and seals the mempool into a new
// block, paying the reward to the specified miner.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	miner := web.Param(r, "miner")

	h.Log.Infow("mine", "traceid", v.TraceID, "miner", miner, "difficulty", h.State.Difficulty())

	mr, err := h.State.Mine(ctx, miner)
	if err != nil {
		if errors.Is(err, state.ErrMissingMiner) {
			return errs.BadRequest(err)
		}
		return fmt.Errorf("mining: %w", err)
	}

	metrics.AddBlocks(ctx)

	resp := mined{
		Message: "New block mined",
		Block:   h.toBlock(mr.Block),
		Reward:  mr.Reward,
		Miner:   mr.Miner,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Blocks returns every block in the chain.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.Blocks()

	out := make([]block, len(blocks))
	for i, b := range blocks {
		out[i] = h.toBlock(b)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// Status returns a summary of the chain, mempool and difficulty.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := nodeStatus{
		Status: h.State.Status(),
	}

	if h.Evts != nil {
		resp.Subscribers = h.Evts.Count()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Subscribe(v.TraceID)
	defer h.Evts.Unsubscribe(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting to receive events from the ledger.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// storeErr maps a store rejection to a client error.
func storeErr(err error) error {
	if errors.Is(err, store.ErrInvalidAddress) {
		return errs.BadRequest(err)
	}
	return err
}
