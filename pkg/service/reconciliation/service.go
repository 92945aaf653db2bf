// Package reconciliation compares stored account balances against balances
// derived from the ledger journal, and aggregates committed transactions
// into reports. Everything here is read-only analytics.
package reconciliation

import (
	"context"
	"log/slog"
	"time"

	"github.com/corebankhq/corebank/pkg/config"
	"github.com/corebankhq/corebank/pkg/domain/transaction"
	"github.com/corebankhq/corebank/pkg/dto"
	"github.com/corebankhq/corebank/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service is the reconciliation engine.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates a new reconciliation Service.
func NewService(deps config.Deps) *Service {
	return &Service{uow: deps.Uow, logger: deps.Logger}
}

// Reconcile compares one account's stored balance with its ledger-derived
// balance. A mismatch is a finding, not an error.
func (s *Service) Reconcile(ctx context.Context, number string) (*dto.ReconcileResult, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	journal, err := s.uow.LedgerRepository()
	if err != nil {
		return nil, err
	}
	a, err := accounts.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	ledgerBalance, err := journal.BalanceOf(ctx, number)
	if err != nil {
		return nil, err
	}
	return &dto.ReconcileResult{
		AccountNumber:  number,
		Match:          a.Balance.Equal(ledgerBalance),
		AccountBalance: a.Balance,
		LedgerBalance:  ledgerBalance,
	}, nil
}

// ReconcileAll sweeps every account in the store against the journal.
func (s *Service) ReconcileAll(ctx context.Context) (*dto.ReconciliationReport, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	journal, err := s.uow.LedgerRepository()
	if err != nil {
		return nil, err
	}
	all, err := accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	report := &dto.ReconciliationReport{
		TotalAccounts: len(all),
		Mismatches:    []dto.Mismatch{},
	}
	for _, a := range all {
		ledgerBalance, err := journal.BalanceOf(ctx, a.Number)
		if err != nil {
			return nil, err
		}
		if !a.Balance.Equal(ledgerBalance) {
			report.Mismatches = append(report.Mismatches, dto.Mismatch{
				AccountNumber:  a.Number,
				AccountBalance: a.Balance,
				LedgerBalance:  ledgerBalance,
				Variance:       a.Balance.Sub(ledgerBalance),
			})
		}
	}
	report.TotalMismatches = len(report.Mismatches)
	return report, nil
}

// BatchReconcile reconciles externally supplied account snapshots against
// externally supplied ledger entries per account. Pure computation over
// already-committed data; core state is never touched.
func (s *Service) BatchReconcile(accounts []dto.AccountSnapshot, entriesByAccount map[string][]dto.LedgerEntryRead) *dto.ReconciliationReport {
	report := &dto.ReconciliationReport{
		TotalAccounts: len(accounts),
		Mismatches:    []dto.Mismatch{},
	}
	for _, snap := range accounts {
		ledgerBalance := decimal.Zero
		for _, e := range entriesByAccount[snap.AccountNumber] {
			if e.EntryType == "CREDIT" {
				ledgerBalance = ledgerBalance.Add(e.Amount)
			} else {
				ledgerBalance = ledgerBalance.Sub(e.Amount)
			}
		}
		if !snap.Balance.Equal(ledgerBalance) {
			report.Mismatches = append(report.Mismatches, dto.Mismatch{
				AccountNumber:  snap.AccountNumber,
				AccountBalance: snap.Balance,
				LedgerBalance:  ledgerBalance,
				Variance:       snap.Balance.Sub(ledgerBalance),
			})
		}
	}
	report.TotalMismatches = len(report.Mismatches)
	return report
}

// DailyReport totals committed transactions for one calendar day, overall by
// type and per operator.
func (s *Service) DailyReport(ctx context.Context, day time.Time) (*dto.DailyReport, error) {
	txRepo, err := s.uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	txs, err := txRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	report := &dto.DailyReport{
		Date:             day.Format("2006-01-02"),
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		TotalTransfers:   decimal.Zero,
		OperatorTotals:   map[string]decimal.Decimal{},
	}
	for _, tx := range txs {
		switch tx.Type {
		case transaction.Deposit:
			report.TotalDeposits = report.TotalDeposits.Add(tx.Amount)
		case transaction.Withdrawal:
			report.TotalWithdrawals = report.TotalWithdrawals.Add(tx.Amount)
		case transaction.Transfer:
			report.TotalTransfers = report.TotalTransfers.Add(tx.Amount)
		}
		if tx.CreatedBy != "" {
			total, ok := report.OperatorTotals[tx.CreatedBy]
			if !ok {
				total = decimal.Zero
			}
			report.OperatorTotals[tx.CreatedBy] = total.Add(tx.Amount)
		}
	}
	return report, nil
}

// Sweep runs ReconcileAll and logs the outcome. It is the entry point for
// the scheduled reconciliation job and never fails the scheduler.
func (s *Service) Sweep(ctx context.Context) {
	report, err := s.ReconcileAll(ctx)
	if err != nil {
		s.logger.Error("reconciliation sweep failed", "error", err)
		return
	}
	if report.TotalMismatches == 0 {
		s.logger.Info("reconciliation sweep clean", "accounts", report.TotalAccounts)
		return
	}
	for _, m := range report.Mismatches {
		s.logger.Warn("ledger drift detected",
			"account", m.AccountNumber,
			"account_balance", m.AccountBalance,
			"ledger_balance", m.LedgerBalance,
			"variance", m.Variance,
		)
	}
}
