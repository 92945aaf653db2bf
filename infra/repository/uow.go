package repository

import (
	"context"

	"github.com/corebankhq/corebank/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do share the enclosing
// database transaction, which is what makes the coordinator's triple
// {balance mutations, ledger pair, transaction record} atomic.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UnitOfWork over the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a database transaction. If fn returns an error the
// transaction is rolled back, otherwise it is committed.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// session returns the transaction when inside Do, the plain session
// otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository implements repository.UnitOfWork.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return NewAccountRepository(u.session()), nil
}

// LedgerRepository implements repository.UnitOfWork.
func (u *UoW) LedgerRepository() (repository.LedgerRepository, error) {
	return NewLedgerRepository(u.session()), nil
}

// TransactionRepository implements repository.UnitOfWork.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return NewTransactionRepository(u.session()), nil
}

// Migrate creates or updates the schema for all engine tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Account{}, &LedgerEntry{}, &Transaction{})
}
