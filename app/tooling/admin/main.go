// This program performs administrative tasks against a ledger store
// without a running node.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/ardanlabs/ledger/app/tooling/admin/commands"
	"github.com/ardanlabs/ledger/foundation/blockchain/store"
	"github.com/ardanlabs/ledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Args conf.Args
		DB   struct {
			Path        string        `conf:"default:zblock/ledger.db"`
			BusyTimeout time.Duration `conf:"default:15s"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "Ledger store administration",
		},
	}

	const prefix = "ADMIN"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	strg, err := store.New(store.Config{
		Path:        cfg.DB.Path,
		BusyTimeout: cfg.DB.BusyTimeout,
		EvHandler:   log.Infof,
	})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer strg.Close()

	return processCommands(context.Background(), cfg.Args, strg)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(ctx context.Context, args conf.Args, strg *store.Store) error {
	switch args.Num(0) {
	case "bals":
		if err := commands.Balances(ctx, os.Stdout, strg, args.Num(1)); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}

	case "trans":
		if err := commands.Transactions(ctx, os.Stdout, strg, args.Num(1)); err != nil {
			return fmt.Errorf("getting transactions: %w", err)
		}

	case "credit":
		if err := commands.Credit(ctx, os.Stdout, strg, args.Num(1), args.Num(2)); err != nil {
			return fmt.Errorf("crediting wallet: %w", err)
		}

	default:
		fmt.Println("bals [address]:           print wallet balances")
		fmt.Println("trans [address]:          print the transaction log")
		fmt.Println("credit <address> <value>: mint funds into a wallet")
		fmt.Println("provide a command to get more help.")
		return commands.ErrHelp
	}

	return nil
}
