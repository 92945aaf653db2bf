package repository

import "context"

// UnitOfWork defines the transaction boundary for money movement. All
// repositories obtained inside Do share one database transaction, so the
// triple {balance mutations, ledger pair, transaction record} commits
// entirely or not at all.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork passed to
	// fn hands out repositories bound to that transaction. If fn returns an
	// error the transaction is rolled back and the error is returned.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// AccountRepository returns the account repository bound to the current
	// transaction, or to a plain session outside Do.
	AccountRepository() (AccountRepository, error)

	// LedgerRepository returns the ledger repository bound to the current
	// transaction, or to a plain session outside Do.
	LedgerRepository() (LedgerRepository, error)

	// TransactionRepository returns the transaction repository bound to the
	// current transaction, or to a plain session outside Do.
	TransactionRepository() (TransactionRepository, error)
}
