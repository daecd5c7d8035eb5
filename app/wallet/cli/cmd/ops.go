package cmd

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"sort"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/pterm/pterm"
)

// These mirror the documents produced by the node.
type (
	statusResp struct {
		Status string `json:"status"`
	}

	balanceResp struct {
		Address string  `json:"address"`
		Balance float64 `json:"balance"`
	}

	entryResp struct {
		ID        uint64    `json:"id"`
		Sender    string    `json:"sender"`
		Recipient string    `json:"recipient"`
		Amount    float64   `json:"amount"`
		Timestamp time.Time `json:"timestamp"`
	}

	minedResp struct {
		Message string `json:"message"`
		Block   struct {
			Index        uint64     `json:"index"`
			Transactions []chain.Tx `json:"transactions"`
			Proof        uint64     `json:"proof"`
			Hash         string     `json:"hash"`
		} `json:"block"`
		Reward float64 `json:"reward"`
		Miner  string  `json:"miner"`
	}

	newTx struct {
		Sender    string  `json:"sender"`
		Recipient string  `json:"recipient"`
		Amount    float64 `json:"amount"`
		Signature string  `json:"signature,omitempty"`
	}
)

// =============================================================================

// createWallet generates a new key file and registers its address with the
// node when register is true.
func createWallet(ctx context.Context, c *client, name string, register bool) error {
	privateKey, path, err := generateKey(name)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("New wallet created! File: %s", path)
	pterm.Info.Printfln("Address: %s", address(privateKey))

	if !register {
		return nil
	}

	var resp statusResp
	if err := c.post(ctx, "/v1/wallets/register", struct {
		Address string `json:"address"`
	}{address(privateKey)}, &resp); err != nil {
		return fmt.Errorf("registering wallet: %w", err)
	}

	pterm.Success.Println(resp.Status)

	return nil
}

// listWallets prints the key files found under the account path.
func listWallets() error {
	ns, err := nameservice.New(accountPath)
	if err != nil {
		return err
	}

	names := ns.Copy()
	if len(names) == 0 {
		pterm.Warning.Println("No wallets found.")
		return nil
	}

	addresses := make([]string, 0, len(names))
	for addr := range names {
		addresses = append(addresses, addr)
	}
	sort.Slice(addresses, func(i, j int) bool { return names[addresses[i]] < names[addresses[j]] })

	data := pterm.TableData{{"Wallet", "Address"}}
	for _, addr := range addresses {
		data = append(data, []string{names[addr], addr})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// showBalance prints the balance the node holds for the address.
func showBalance(ctx context.Context, c *client, addr string) error {
	var bal balanceResp
	if err := c.get(ctx, "/v1/balances/list/"+addr, &bal); err != nil {
		return fmt.Errorf("fetching balance: %w", err)
	}

	pterm.Info.Printfln("Address: %s", bal.Address)
	pterm.Success.Printfln("Balance: %g", bal.Balance)

	return nil
}

// showTransactions prints the node's transaction log.
func showTransactions(ctx context.Context, c *client) error {
	var entries []entryResp
	if err := c.get(ctx, "/v1/tx/list", &entries); err != nil {
		return fmt.Errorf("fetching transactions: %w", err)
	}

	if len(entries) == 0 {
		pterm.Warning.Println("No transactions found.")
		return nil
	}

	data := pterm.TableData{{"ID", "Timestamp", "Sender", "Recipient", "Amount"}}
	for _, e := range entries {
		data = append(data, []string{
			fmt.Sprint(e.ID),
			e.Timestamp.Format(time.RFC3339),
			e.Sender,
			e.Recipient,
			fmt.Sprintf("%g", e.Amount),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// sendTransaction signs the transaction with the private key and submits it.
func sendTransaction(ctx context.Context, c *client, privateKey *ecdsa.PrivateKey, to string, amount float64) error {
	tx, err := chain.NewTx(address(privateKey), to, amount)
	if err != nil {
		return err
	}

	sig, err := signature.SignToString(tx, privateKey)
	if err != nil {
		return fmt.Errorf("signing transaction: %w", err)
	}

	return submit(ctx, c, newTx{
		Sender:    tx.Sender,
		Recipient: tx.Recipient,
		Amount:    tx.Amount,
		Signature: sig,
	})
}

// submit posts the transaction to the node.
func submit(ctx context.Context, c *client, ntx newTx) error {
	var resp statusResp
	if err := c.post(ctx, "/v1/tx/add", ntx, &resp); err != nil {
		return fmt.Errorf("sending transaction: %w", err)
	}

	pterm.Success.Println(resp.Status)

	return nil
}

// mineBlock asks the node to mine a block paying the reward to the address.
func mineBlock(ctx context.Context, c *client, addr string) error {
	spinner, _ := pterm.DefaultSpinner.Start("Mining a new block ...")

	var mr minedResp
	if err := c.get(ctx, "/v1/mining/mine/"+addr, &mr); err != nil {
		spinner.Fail("Error mining block.")
		return err
	}

	spinner.Success(mr.Message)
	pterm.Info.Printfln("Block: %d  Proof: %d  Transactions: %d", mr.Block.Index, mr.Block.Proof, len(mr.Block.Transactions))
	pterm.Info.Printfln("Hash: %s", mr.Block.Hash)
	pterm.Success.Printfln("Reward of %g paid to %s", mr.Reward, mr.Miner)

	return nil
}
