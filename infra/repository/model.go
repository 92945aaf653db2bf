// Package repository contains the gorm-backed persistence layer: database
// models, per-aggregate repositories and the UnitOfWork.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents an account row. The account number is the business key;
// balances use an exact decimal column and are constrained non-negative at
// the application layer.
type Account struct {
	ID            uint            `gorm:"primaryKey"`
	AccountNumber string          `gorm:"uniqueIndex;not null;size:64"`
	AccountType   string          `gorm:"not null;size:16"`
	Balance       decimal.Decimal `gorm:"type:decimal(19,2);not null;default:0"`
	CustomerID    uuid.UUID       `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LedgerEntry represents one side of a double-entry movement. Rows are
// insert-only; the application never updates or deletes them.
type LedgerEntry struct {
	ID            uint            `gorm:"primaryKey"`
	AccountNumber string          `gorm:"index;not null;size:64"`
	TransactionID string          `gorm:"index;not null;size:64"`
	Amount        decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	EntryType     string          `gorm:"not null;size:8"`
	Narration     string
	CreatedAt     time.Time `gorm:"not null"`
}

// Transaction represents a committed movement. The unique index on the
// reference id is the idempotency guard.
type Transaction struct {
	ID            uint            `gorm:"primaryKey"`
	ReferenceID   string          `gorm:"uniqueIndex;not null;size:64"`
	AccountNumber string          `gorm:"index;not null;size:64"`
	TargetAccount string          `gorm:"index;size:64"`
	Amount        decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	Type          string          `gorm:"not null;size:16"`
	Narration     string
	CreatedBy     string    `gorm:"size:64"`
	CreatedAt     time.Time `gorm:"index;not null"`
}
