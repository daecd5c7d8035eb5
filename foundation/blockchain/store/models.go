package store

import "time"

// dbWallet represents a registered wallet.
type dbWallet struct {
	Address string `gorm:"primaryKey"`
}

// TableName implements the gorm Tabler interface.
func (dbWallet) TableName() string {
	return "wallets"
}

// dbBalance represents the current balance for an address.
type dbBalance struct {
	Address string  `gorm:"primaryKey"`
	Amount  float64 `gorm:"not null;default:0;check:amount >= 0"`
}

// TableName implements the gorm Tabler interface.
func (dbBalance) TableName() string {
	return "balances"
}

// dbTransaction represents an entry in the transaction log.
type dbTransaction struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Sender    string    `gorm:"not null;index"`
	Recipient string    `gorm:"not null;index"`
	Amount    float64   `gorm:"not null;check:amount > 0"`
	Timestamp time.Time `gorm:"not null;autoCreateTime"`
}

// TableName implements the gorm Tabler interface.
func (dbTransaction) TableName() string {
	return "transactions"
}

// =============================================================================

// Entry represents a transaction recorded in the log.
type Entry struct {
	ID        uint64    `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

func toEntry(dbTx dbTransaction) Entry {
	return Entry{
		ID:        dbTx.ID,
		Sender:    dbTx.Sender,
		Recipient: dbTx.Recipient,
		Amount:    dbTx.Amount,
		Timestamp: dbTx.Timestamp,
	}
}
