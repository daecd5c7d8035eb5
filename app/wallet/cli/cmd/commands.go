package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/chain"
	"github.com/spf13/cobra"
)

var (
	register bool
	to       string
	amount   float64
	network  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new key pair and register it with the node",
	RunE: func(cmd *cobra.Command, args []string) error {
		return createWallet(cmd.Context(), newClient(nodeURL), accountName, register)
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the address for the specific wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		privateKey, err := loadKey(accountName)
		if err != nil {
			return err
		}

		fmt.Println(address(privateKey))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the wallets in the account path",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listWallets()
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the balance for your wallet or the specified address",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return showBalance(cmd.Context(), newClient(nodeURL), args[0])
		}

		privateKey, err := loadKey(accountName)
		if err != nil {
			return err
		}

		return showBalance(cmd.Context(), newClient(nodeURL), address(privateKey))
	},
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Print the node's transaction log",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showTransactions(cmd.Context(), newClient(nodeURL))
	},
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign and send a transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient(nodeURL)

		// Network credits are not signed and are only accepted by a node
		// that doesn't verify signatures.
		if network {
			return submit(cmd.Context(), c, newTx{Sender: chain.NetworkSender, Recipient: to, Amount: amount})
		}

		privateKey, err := loadKey(accountName)
		if err != nil {
			return err
		}

		return sendTransaction(cmd.Context(), c, privateKey, to, amount)
	},
}

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine a block and pay the reward to your wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		privateKey, err := loadKey(accountName)
		if err != nil {
			return err
		}

		return mineBlock(cmd.Context(), newClient(nodeURL), address(privateKey))
	},
}

func init() {
	generateCmd.Flags().BoolVarP(&register, "register", "r", true, "Register the new wallet with the node.")

	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address of the recipient.")
	sendCmd.Flags().Float64VarP(&amount, "amount", "v", 0, "Amount to send.")
	sendCmd.Flags().BoolVarP(&network, "network", "n", false, "Send as the network instead of the wallet.")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(generateCmd, accountCmd, listCmd, balanceCmd, transactionsCmd, sendCmd, mineCmd)
}
