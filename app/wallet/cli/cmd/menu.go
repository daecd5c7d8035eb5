package cmd

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const (
	optCreate       = "Create New Wallet"
	optList         = "List Existing Wallets"
	optBalance      = "View Balance"
	optTransactions = "View Transactions"
	optSend         = "Send Transaction"
	optMine         = "Mine Block"
	optExit         = "Exit"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive wallet menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.Context(), newClient(nodeURL))
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(ctx context.Context, c *client) error {
	options := []string{optCreate, optList, optBalance, optTransactions, optSend, optMine, optExit}

	for {
		pterm.Println()
		choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Choose an option").WithOptions(options).Show()
		if err != nil {
			return err
		}

		if choice == optExit {
			pterm.Info.Println("Exiting wallet...")
			return nil
		}

		// A failed option is reported and the menu keeps running.
		if err := runOption(ctx, c, choice); err != nil {
			pterm.Error.Println(err)
		}
	}
}

func runOption(ctx context.Context, c *client, choice string) error {
	switch choice {
	case optCreate:
		name, err := prompt("Wallet name (empty for a generated name)")
		if err != nil {
			return err
		}
		return createWallet(ctx, c, walletName(name, time.Now()), true)

	case optList:
		return listWallets()

	case optBalance:
		privateKey, err := promptKey()
		if err != nil {
			return err
		}
		return showBalance(ctx, c, address(privateKey))

	case optTransactions:
		return showTransactions(ctx, c)

	case optSend:
		privateKey, err := promptKey()
		if err != nil {
			return err
		}

		recipient, err := prompt("Recipient address")
		if err != nil {
			return err
		}

		value, err := prompt("Amount")
		if err != nil {
			return err
		}

		amount, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", value)
		}

		return sendTransaction(ctx, c, privateKey, recipient, amount)

	case optMine:
		privateKey, err := promptKey()
		if err != nil {
			return err
		}
		return mineBlock(ctx, c, address(privateKey))
	}

	return nil
}

// prompt reads one line of text input.
func prompt(text string) (string, error) {
	value, err := pterm.DefaultInteractiveTextInput.WithDefaultText(text).Show()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	return strings.TrimSpace(value), nil
}

// promptKey asks for a wallet name and loads its key.
func promptKey() (*ecdsa.PrivateKey, error) {
	name, err := prompt("Enter your wallet name")
	if err != nil {
		return nil, err
	}

	return loadKey(name)
}

// walletName returns the name, or a name derived from the time when the
// name is empty.
func walletName(name string, now time.Time) string {
	if name != "" {
		return name
	}

	return fmt.Sprintf("wallet_%d", now.Unix())
}
