// Package store maintains the durable view of the ledger in a relational
// database: registered wallets, current balances and the append only
// transaction log. Every operation is atomic to concurrent callers.
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Memory is the path to use for a database that only lives in memory.
const Memory = ":memory:"

// Set of error variables for the store.
var (
	ErrInvalidAddress    = errors.New("address is required")
	ErrInvalidAmount     = errors.New("amount must be a finite number greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeOpening   = errors.New("cannot open a balance with a negative amount")
)

// =============================================================================

// Config represents the settings required to open the store.
type Config struct {
	Path        string
	BusyTimeout time.Duration
	EvHandler   func(v string, args ...any)
}

// Store manages the wallets, balances and transaction log.
type Store struct {
	db        *gorm.DB
	mu        sync.Mutex
	evHandler func(v string, args ...any)
}

// New opens the database at the configured path, turns on write ahead
// logging for files and makes sure the schema exists.
func New(cfg Config) (*Store, error) {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if cfg.Path == "" {
		return nil, errors.New("database path is required")
	}

	if cfg.Path != Memory {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("creating database folder: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:  gormlogger.Discard,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing database handle: %w", err)
	}

	// A single connection gives us one writer at a time and keeps an in
	// memory database alive for the life of the store.
	sqlDB.SetMaxOpenConns(1)

	if cfg.Path != Memory {
		if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
		ev("store: New: WAL mode enabled")

		busy := cfg.BusyTimeout
		if busy == 0 {
			busy = 15 * time.Second
		}
		if err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", busy.Milliseconds())).Error; err != nil {
			return nil, fmt.Errorf("setting busy timeout: %w", err)
		}
	}

	if err := db.AutoMigrate(&dbWallet{}, &dbBalance{}, &dbTransaction{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	ev("store: New: tables ready: path[%s]", cfg.Path)

	s := Store{
		db:        db,
		evHandler: ev,
	}

	return &s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// StatusCheck returns nil if it can successfully talk to the database.
func (s *Store) StatusCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

// =============================================================================

// RegisterWallet records the wallet and a zero balance for it. Registering a
// wallet that already exists changes nothing.
func (s *Store) RegisterWallet(ctx context.Context, address string) error {
	if address == "" {
		return ErrInvalidAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f := func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dbWallet{Address: address}).Error; err != nil {
			return fmt.Errorf("inserting wallet: %w", err)
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dbBalance{Address: address}).Error; err != nil {
			return fmt.Errorf("inserting balance: %w", err)
		}

		return nil
	}

	if err := s.db.WithContext(ctx).Transaction(f); err != nil {
		return fmt.Errorf("registering wallet[%s]: %w", address, err)
	}

	s.evHandler("store: RegisterWallet: wallet[%s]", address)

	return nil
}

// Wallets returns the addresses of every registered wallet.
func (s *Store) Wallets(ctx context.Context) ([]string, error) {
	var addresses []string
	if err := s.db.WithContext(ctx).Model(&dbWallet{}).Order("address").Pluck("address", &addresses).Error; err != nil {
		return nil, fmt.Errorf("selecting wallets: %w", err)
	}

	return addresses, nil
}

// Balance returns the current balance for the address. An address without a
// balance record has a balance of zero.
func (s *Store) Balance(ctx context.Context, address string) (float64, error) {
	var bal dbBalance
	if err := s.db.WithContext(ctx).Where("address = ?", address).Limit(1).Find(&bal).Error; err != nil {
		return 0, fmt.Errorf("selecting balance[%s]: %w", address, err)
	}

	return bal.Amount, nil
}

// UpdateBalance adds the delta to the current balance of the address. When
// the result would be negative the update is rejected with
// ErrInsufficientFunds and nothing changes. A missing balance record is
// created, which is only allowed for a delta that is not negative.
func (s *Store) UpdateBalance(ctx context.Context, address string, delta float64) (float64, error) {
	if address == "" {
		return 0, ErrInvalidAddress
	}

	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return 0, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var newBalance float64

	f := func(tx *gorm.DB) error {
		var bal dbBalance
		res := tx.Where("address = ?", address).Limit(1).Find(&bal)
		if res.Error != nil {
			return fmt.Errorf("selecting balance: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			if delta < 0 {
				return ErrNegativeOpening
			}

			newBalance = delta
			if err := tx.Create(&dbBalance{Address: address, Amount: newBalance}).Error; err != nil {
				return fmt.Errorf("inserting balance: %w", err)
			}

			return nil
		}

		newBalance = bal.Amount + delta
		if newBalance < 0 {
			return ErrInsufficientFunds
		}

		if err := tx.Model(&dbBalance{}).Where("address = ?", address).Update("amount", newBalance).Error; err != nil {
			return fmt.Errorf("updating balance: %w", err)
		}

		return nil
	}

	if err := s.db.WithContext(ctx).Transaction(f); err != nil {
		s.evHandler("store: UpdateBalance: WARNING: address[%s]: delta[%g]: %s", address, delta, err)
		return 0, fmt.Errorf("updating balance[%s]: %w", address, err)
	}

	s.evHandler("store: UpdateBalance: address[%s]: balance[%g]", address, newBalance)

	return newBalance, nil
}

// =============================================================================

// AddTransaction records the transfer in the log, debits the sender and
// credits the recipient as one unit. The sender must hold at least the
// amount; no sender is exempt at this level.
func (s *Store) AddTransaction(ctx context.Context, sender string, recipient string, amount float64) (Entry, error) {
	if sender == "" || recipient == "" {
		return Entry{}, ErrInvalidAddress
	}

	if !positive(amount) {
		return Entry{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx := dbTransaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	f := func(tx *gorm.DB) error {
		var bal dbBalance
		if err := tx.Where("address = ?", sender).Limit(1).Find(&bal).Error; err != nil {
			return fmt.Errorf("selecting sender balance: %w", err)
		}

		if bal.Amount < amount {
			return fmt.Errorf("%w: sender has %g, needs %g", ErrInsufficientFunds, bal.Amount, amount)
		}

		if err := tx.Create(&dbTx).Error; err != nil {
			return fmt.Errorf("inserting transaction: %w", err)
		}

		if err := tx.Model(&dbBalance{}).Where("address = ?", sender).Update("amount", gorm.Expr("amount - ?", amount)).Error; err != nil {
			return fmt.Errorf("debiting sender: %w", err)
		}

		if err := credit(tx, recipient, amount); err != nil {
			return fmt.Errorf("crediting recipient: %w", err)
		}

		return nil
	}

	if err := s.db.WithContext(ctx).Transaction(f); err != nil {
		s.evHandler("store: AddTransaction: WARNING: %s->%s:%g: %s", sender, recipient, amount, err)
		return Entry{}, fmt.Errorf("adding transaction: %w", err)
	}

	s.evHandler("store: AddTransaction: id[%d]: %s->%s:%g", dbTx.ID, sender, recipient, amount)

	return toEntry(dbTx), nil
}

// Mint records the entry in the log and credits the recipient as one unit
// without debiting anyone. This is the write used for coinbase transactions.
func (s *Store) Mint(ctx context.Context, sender string, recipient string, amount float64) (Entry, error) {
	if sender == "" || recipient == "" {
		return Entry{}, ErrInvalidAddress
	}

	if !positive(amount) {
		return Entry{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx := dbTransaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	f := func(tx *gorm.DB) error {
		if err := tx.Create(&dbTx).Error; err != nil {
			return fmt.Errorf("inserting transaction: %w", err)
		}

		if err := credit(tx, recipient, amount); err != nil {
			return fmt.Errorf("crediting recipient: %w", err)
		}

		return nil
	}

	if err := s.db.WithContext(ctx).Transaction(f); err != nil {
		return Entry{}, fmt.Errorf("minting transaction: %w", err)
	}

	s.evHandler("store: Mint: id[%d]: %s->%s:%g", dbTx.ID, sender, recipient, amount)

	return toEntry(dbTx), nil
}

// Transactions returns every logged transaction in the order it was added.
func (s *Store) Transactions(ctx context.Context) ([]Entry, error) {
	var dbTxs []dbTransaction
	if err := s.db.WithContext(ctx).Order("id").Find(&dbTxs).Error; err != nil {
		return nil, fmt.Errorf("selecting transactions: %w", err)
	}

	entries := make([]Entry, len(dbTxs))
	for i, dbTx := range dbTxs {
		entries[i] = toEntry(dbTx)
	}

	return entries, nil
}

// =============================================================================

// credit adds the amount to the address, creating the balance if needed.
func credit(tx *gorm.DB, address string, amount float64) error {
	bal := dbBalance{
		Address: address,
		Amount:  amount,
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		DoUpdates: clause.Assignments(map[string]any{"amount": gorm.Expr("amount + ?", amount)}),
	}

	return tx.Clauses(onConflict).Create(&bal).Error
}

// positive reports whether the amount is finite and greater than zero.
func positive(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 1)
}
