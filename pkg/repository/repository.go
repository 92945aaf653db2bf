// Package repository defines the persistence contracts consumed by the
// service layer. Implementations live under infra/repository.
package repository

import (
	"context"
	"time"

	"github.com/corebankhq/corebank/pkg/domain/account"
	"github.com/corebankhq/corebank/pkg/domain/ledger"
	"github.com/corebankhq/corebank/pkg/domain/transaction"
	"github.com/shopspring/decimal"
)

// AccountRepository owns account rows. Balance writes are only valid inside
// a UnitOfWork after the row was fetched with GetForUpdate.
type AccountRepository interface {
	// Create persists a new account. The account number is unique.
	Create(ctx context.Context, a *account.Account) error

	// Get returns the account or account.ErrAccountNotFound.
	Get(ctx context.Context, number string) (*account.Account, error)

	// GetForUpdate returns the account holding an exclusive row lock for the
	// remainder of the enclosing transaction, serializing concurrent
	// debit/credit sections on the same account.
	GetForUpdate(ctx context.Context, number string) (*account.Account, error)

	// UpdateBalance persists a new balance for the account.
	UpdateBalance(ctx context.Context, number string, balance decimal.Decimal) error

	// List returns all accounts.
	List(ctx context.Context) ([]*account.Account, error)
}

// LedgerRepository owns the append-only journal.
type LedgerRepository interface {
	// AppendPair writes both entries of a balanced pair, all or nothing.
	AppendPair(ctx context.Context, p ledger.Pair) error

	// ListByAccount returns entries for the account, newest first.
	ListByAccount(ctx context.Context, number string, limit, offset int) ([]ledger.Entry, error)

	// BalanceOf computes the ledger-derived balance for the account.
	BalanceOf(ctx context.Context, number string) (decimal.Decimal, error)
}

// TransactionRepository owns the immutable transaction records. The unique
// constraint on the reference id is the idempotency guard: Create is the
// atomic check-and-reserve and returns transaction.ErrDuplicate on conflict.
type TransactionRepository interface {
	Create(ctx context.Context, tx *transaction.Transaction) error
	GetByReference(ctx context.Context, referenceID string) (*transaction.Transaction, error)

	// ListByAccount returns transactions where the account is source or
	// target, newest first.
	ListByAccount(ctx context.Context, number string, limit, offset int) ([]*transaction.Transaction, error)

	// ListByDay returns transactions committed on the given calendar day.
	ListByDay(ctx context.Context, day time.Time) ([]*transaction.Transaction, error)
}
