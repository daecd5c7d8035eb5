// Package commands contains the functionality for the set of commands
// currently supported by the admin cli.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
	"github.com/pterm/pterm"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// Storer represents the store behavior the commands need.
type Storer interface {
	Wallets(ctx context.Context) ([]string, error)
	Balance(ctx context.Context, address string) (float64, error)
	Transactions(ctx context.Context) ([]store.Entry, error)
	Mint(ctx context.Context, sender string, recipient string, amount float64) (store.Entry, error)
}

// Balances writes the balance of every registered wallet, or only the
// specified address when one is provided.
func Balances(ctx context.Context, w io.Writer, s Storer, address string) error {
	wallets := []string{address}
	if address == "" {
		var err error
		if wallets, err = s.Wallets(ctx); err != nil {
			return err
		}
	}

	data := pterm.TableData{{"Address", "Balance"}}
	for _, addr := range wallets {
		bal, err := s.Balance(ctx, addr)
		if err != nil {
			return err
		}
		data = append(data, []string{addr, strconv.FormatFloat(bal, 'f', -1, 64)})
	}

	return render(w, data)
}

// Transactions writes the transaction log, or only the entries that
// involve the specified address when one is provided.
func Transactions(ctx context.Context, w io.Writer, s Storer, address string) error {
	entries, err := s.Transactions(ctx)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"ID", "Timestamp", "Sender", "Recipient", "Amount"}}
	for _, e := range entries {
		if address != "" && !strings.EqualFold(e.Sender, address) && !strings.EqualFold(e.Recipient, address) {
			continue
		}

		data = append(data, []string{
			strconv.FormatUint(e.ID, 10),
			e.Timestamp.Format(time.RFC3339),
			e.Sender,
			e.Recipient,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
		})
	}

	return render(w, data)
}

// Credit mints the value into the address on behalf of the network.
func Credit(ctx context.Context, w io.Writer, s Storer, address string, value string) error {
	if address == "" || value == "" {
		return errors.New("credit <address> <value>")
	}

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parsing value %q: %w", value, err)
	}

	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return fmt.Errorf("value %q is not a finite number", value)
	}

	e, err := s.Mint(ctx, chain.NetworkSender, address, amount)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Entry %d: %s credited %s with %g\n", e.ID, e.Sender, e.Recipient, e.Amount)

	return nil
}

func render(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, out)
	return err
}
