package repository

import (
	"context"

	domainledger "github.com/corebankhq/corebank/pkg/domain/ledger"
	"github.com/corebankhq/corebank/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a gorm-backed journal repository.
func NewLedgerRepository(db *gorm.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// AppendPair inserts both sides of the pair in a single statement, so the
// journal never holds a dangling half of a movement.
func (r *ledgerRepository) AppendPair(ctx context.Context, p domainledger.Pair) error {
	rows := []LedgerEntry{
		mapEntryToRow(p.Debit),
		mapEntryToRow(p.Credit),
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *ledgerRepository) ListByAccount(ctx context.Context, number string, limit, offset int) ([]domainledger.Entry, error) {
	var rows []LedgerEntry
	q := r.db.WithContext(ctx).
		Where("account_number = ?", number).
		Order("created_at DESC, id DESC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domainledger.Entry, 0, len(rows))
	for i := range rows {
		out = append(out, mapRowToEntry(&rows[i]))
	}
	return out, nil
}

func (r *ledgerRepository) BalanceOf(ctx context.Context, number string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&LedgerEntry{}).
		Select("COALESCE(SUM(CASE WHEN entry_type = ? THEN amount ELSE -amount END), 0)", string(domainledger.Credit)).
		Where("account_number = ?", number).
		Scan(&balance).Error
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func mapEntryToRow(e domainledger.Entry) LedgerEntry {
	return LedgerEntry{
		AccountNumber: e.AccountNumber,
		TransactionID: e.TransactionID,
		Amount:        e.Amount,
		EntryType:     string(e.Type),
		Narration:     e.Narration,
		CreatedAt:     e.CreatedAt,
	}
}

func mapRowToEntry(row *LedgerEntry) domainledger.Entry {
	return domainledger.Entry{
		AccountNumber: row.AccountNumber,
		TransactionID: row.TransactionID,
		Amount:        row.Amount,
		Type:          domainledger.EntryType(row.EntryType),
		Narration:     row.Narration,
		CreatedAt:     row.CreatedAt,
	}
}
