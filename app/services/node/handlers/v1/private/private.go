// Package private maintains the group of handlers for operator access.
package private

import (
	"context"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of operator endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Reset puts the chain back to genesis, empties the mempool and returns the
// difficulty to its initial value. Balances and the transaction log are kept.
func (h Handlers) Reset(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.Log.Infow("reset", "traceid", v.TraceID, "status", "resetting chain, mempool and difficulty")

	h.State.Reset()

	resp := struct {
		Status string       `json:"status"`
		Node   state.Status `json:"node"`
	}{
		Status: "node reset to genesis",
		Node:   h.State.Status(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the transactions waiting to be mined without any name
// resolution.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.Mempool(), http.StatusOK)
}
