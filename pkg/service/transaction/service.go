// Package transaction implements the money-movement coordinator. It owns the
// sequence validate -> reserve -> mutate balances -> append ledger, and runs
// the whole of it inside one UnitOfWork so the triple {balance mutations,
// ledger pair, transaction record} commits entirely or not at all.
package transaction

import (
	"context"
	"log/slog"

	"github.com/corebankhq/corebank/pkg/config"
	"github.com/corebankhq/corebank/pkg/domain/account"
	"github.com/corebankhq/corebank/pkg/domain/ledger"
	"github.com/corebankhq/corebank/pkg/domain/transaction"
	"github.com/corebankhq/corebank/pkg/dto"
	"github.com/corebankhq/corebank/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service coordinates deposits, withdrawals and transfers.
type Service struct {
	uow             repository.UnitOfWork
	clearingAccount string
	logger          *slog.Logger
}

// NewService creates a coordinator with the provided dependencies.
func NewService(deps config.Deps) *Service {
	return &Service{
		uow:             deps.Uow,
		clearingAccount: deps.Cfg.Bank.ClearingAccount,
		logger:          deps.Logger,
	}
}

// CreateRequest is a money-movement intent as received from the outer surface.
type CreateRequest struct {
	AccountNumber string
	TargetAccount string
	Amount        decimal.Decimal
	Type          transaction.TxType
	Narration     string
	CreatedBy     string
}

// Create validates the intent and commits it. Validation failures reject the
// request before any store access; once commit starts, every mutation happens
// inside a single transaction boundary, so a failure at any step (including
// insufficient funds on the debit leg) leaves no partial effect behind.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*dto.TransactionRead, error) {
	logger := s.logger.With(
		"account", req.AccountNumber,
		"type", req.Type,
		"amount", req.Amount,
	)

	tx, err := transaction.New(req.AccountNumber, req.TargetAccount, req.Amount, req.Type, req.Narration, req.CreatedBy)
	if err != nil {
		logger.Warn("transaction rejected", "error", err)
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txRepo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		// Reserving the reference id is the idempotency guard: the unique
		// constraint makes this insert the atomic check-and-reserve.
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		switch tx.Type {
		case transaction.Deposit:
			return s.commitDeposit(ctx, uow, tx)
		case transaction.Withdrawal:
			return s.commitWithdrawal(ctx, uow, tx)
		case transaction.Transfer:
			return s.commitTransfer(ctx, uow, tx)
		default:
			return transaction.ErrUnsupportedType
		}
	})
	if err != nil {
		logger.Warn("transaction aborted", "reference", tx.ReferenceID, "error", err)
		return nil, err
	}
	logger.Info("transaction committed", "reference", tx.ReferenceID)
	return mapTransaction(tx), nil
}

func (s *Service) commitDeposit(ctx context.Context, uow repository.UnitOfWork, tx *transaction.Transaction) error {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	if _, err := s.lookupClearing(ctx, accounts); err != nil {
		return err
	}
	if err := creditAccount(ctx, accounts, tx.AccountNumber, tx.Amount); err != nil {
		return err
	}
	return appendPair(ctx, uow, s.clearingAccount, tx.AccountNumber, tx)
}

func (s *Service) commitWithdrawal(ctx context.Context, uow repository.UnitOfWork, tx *transaction.Transaction) error {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	if _, err := s.lookupClearing(ctx, accounts); err != nil {
		return err
	}
	if err := debitAccount(ctx, accounts, tx.AccountNumber, tx.Amount); err != nil {
		return err
	}
	return appendPair(ctx, uow, tx.AccountNumber, s.clearingAccount, tx)
}

func (s *Service) commitTransfer(ctx context.Context, uow repository.UnitOfWork, tx *transaction.Transaction) error {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	// Lock both rows in sorted account-number order so two opposing
	// transfers between the same pair cannot deadlock.
	first, second := tx.AccountNumber, tx.TargetAccount
	if second < first {
		first, second = second, first
	}
	locked := map[string]*account.Account{}
	for _, number := range []string{first, second} {
		a, err := accounts.GetForUpdate(ctx, number)
		if err != nil {
			return err
		}
		locked[number] = a
	}

	source, target := locked[tx.AccountNumber], locked[tx.TargetAccount]
	if err := source.Debit(tx.Amount); err != nil {
		return err
	}
	if err := target.Credit(tx.Amount); err != nil {
		return err
	}
	if err := accounts.UpdateBalance(ctx, source.Number, source.Balance); err != nil {
		return err
	}
	if err := accounts.UpdateBalance(ctx, target.Number, target.Balance); err != nil {
		return err
	}
	return appendPair(ctx, uow, tx.AccountNumber, tx.TargetAccount, tx)
}

// lookupClearing resolves the clearing account like any other account; it is
// provisioned at startup, so absence is a deployment fault.
func (s *Service) lookupClearing(ctx context.Context, accounts repository.AccountRepository) (*account.Account, error) {
	return accounts.Get(ctx, s.clearingAccount)
}

func creditAccount(ctx context.Context, accounts repository.AccountRepository, number string, amount decimal.Decimal) error {
	a, err := accounts.GetForUpdate(ctx, number)
	if err != nil {
		return err
	}
	if err := a.Credit(amount); err != nil {
		return err
	}
	return accounts.UpdateBalance(ctx, a.Number, a.Balance)
}

func debitAccount(ctx context.Context, accounts repository.AccountRepository, number string, amount decimal.Decimal) error {
	a, err := accounts.GetForUpdate(ctx, number)
	if err != nil {
		return err
	}
	if err := a.Debit(amount); err != nil {
		return err
	}
	return accounts.UpdateBalance(ctx, a.Number, a.Balance)
}

func appendPair(ctx context.Context, uow repository.UnitOfWork, debitAcc, creditAcc string, tx *transaction.Transaction) error {
	journal, err := uow.LedgerRepository()
	if err != nil {
		return err
	}
	pair, err := ledger.NewPair(debitAcc, creditAcc, tx.Amount, tx.ReferenceID, tx.Narration)
	if err != nil {
		return err
	}
	return journal.AppendPair(ctx, pair)
}

// GetByReference returns the committed transaction for a reference id.
func (s *Service) GetByReference(ctx context.Context, referenceID string) (*dto.TransactionRead, error) {
	txRepo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	tx, err := txRepo.GetByReference(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	return mapTransaction(tx), nil
}

// ListByAccount returns committed transactions touching the account as source
// or target, newest first.
func (s *Service) ListByAccount(ctx context.Context, number string, limit, offset int) ([]*dto.TransactionRead, error) {
	txRepo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	txs, err := txRepo.ListByAccount(ctx, number, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionRead, 0, len(txs))
	for _, tx := range txs {
		out = append(out, mapTransaction(tx))
	}
	return out, nil
}

func mapTransaction(tx *transaction.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ReferenceID:   tx.ReferenceID,
		AccountNumber: tx.AccountNumber,
		TargetAccount: tx.TargetAccount,
		Amount:        tx.Amount,
		Type:          string(tx.Type),
		Narration:     tx.Narration,
		Timestamp:     tx.CreatedAt,
	}
}
