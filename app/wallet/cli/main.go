// This program is a wallet for the ledger node. It manages key files and
// talks to the node's public API.
package main

import "github.com/ardanlabs/ledger/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
