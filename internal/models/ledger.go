package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger record kinds.
const (
	LedgerKindDeposit  = "deposit"
	LedgerKindWithdraw = "withdraw"
	LedgerKindSet      = "set"
)

// DepositRecord is an append-only audit row written alongside every balance
// mutation. Rows are never updated or deleted.
type DepositRecord struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	UID          string          `gorm:"type:varchar(64);not null;index"`
	RecordedAt   time.Time       `gorm:"type:timestamptz;not null;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	Kind         string          `gorm:"type:varchar(20);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(30,10);not null"`
}

func (DepositRecord) TableName() string {
	return "deposit_records"
}

// BlownAccountRecord captures the balance immediately before a mark-as-blown
// reset. Append-only.
type BlownAccountRecord struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement"`
	UID             string          `gorm:"type:varchar(64);not null;index"`
	RecordedAt      time.Time       `gorm:"type:timestamptz;not null"`
	PreviousBalance decimal.Decimal `gorm:"type:numeric(30,10);not null"`
}

func (BlownAccountRecord) TableName() string {
	return "blown_account_records"
}

// BalanceSnapshot is written by the daily cron and is the baseline for the
// daily-loss alert sweep.
type BalanceSnapshot struct {
	ID      uint64          `gorm:"primaryKey;autoIncrement"`
	UID     string          `gorm:"type:varchar(64);not null;index"`
	Balance decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	TakenAt time.Time       `gorm:"type:timestamptz;not null;index"`
}

func (BalanceSnapshot) TableName() string {
	return "balance_snapshots"
}
