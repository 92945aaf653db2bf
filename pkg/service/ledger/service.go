// Package ledger exposes read-only journal queries.
package ledger

import (
	"context"
	"log/slog"

	"github.com/corebankhq/corebank/pkg/config"
	domainledger "github.com/corebankhq/corebank/pkg/domain/ledger"
	"github.com/corebankhq/corebank/pkg/dto"
	"github.com/corebankhq/corebank/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service answers ledger queries. It never writes journal state; appends
// happen only inside the transaction coordinator.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a new ledger query Service.
func NewService(deps config.Deps) *Service {
	return &Service{uow: deps.Uow, logger: deps.Logger}
}

// ListByAccount returns journal entries for the account, newest first.
func (s *Service) ListByAccount(ctx context.Context, number string, limit, offset int) ([]dto.LedgerEntryRead, error) {
	journal, err := s.uow.LedgerRepository()
	if err != nil {
		return nil, err
	}
	entries, err := journal.ListByAccount(ctx, number, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryRead, 0, len(entries))
	for _, e := range entries {
		out = append(out, mapEntry(e))
	}
	return out, nil
}

// BalanceOf returns the ledger-derived balance for the account.
func (s *Service) BalanceOf(ctx context.Context, number string) (decimal.Decimal, error) {
	journal, err := s.uow.LedgerRepository()
	if err != nil {
		return decimal.Zero, err
	}
	return journal.BalanceOf(ctx, number)
}

func mapEntry(e domainledger.Entry) dto.LedgerEntryRead {
	return dto.LedgerEntryRead{
		AccountNumber: e.AccountNumber,
		TransactionID: e.TransactionID,
		Amount:        e.Amount,
		EntryType:     string(e.Type),
		Narration:     e.Narration,
		Timestamp:     e.CreatedAt,
	}
}
