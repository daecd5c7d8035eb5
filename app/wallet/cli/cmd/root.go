// Package cmd contains wallet app
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/ledger/foundation/nameservice"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	accountName string
	accountPath string
	nodeURL     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "private", "Name of the private key file.")
	rootCmd.PersistentFlags().StringVarP(&accountPath, "account-path", "p", "zblock/accounts/", "Path to the directory with private keys.")
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:8080", "Url of the node.")
}

var rootCmd = &cobra.Command{
	Use:           "wallet",
	Short:         "A simple wallet for the ledger node",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a failure status when the
// command returns an error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func getPrivateKeyPath(name string) string {
	if !strings.HasSuffix(name, nameservice.KeyExtension) {
		name += nameservice.KeyExtension
	}

	return filepath.Join(accountPath, name)
}
