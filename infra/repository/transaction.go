package repository

import (
	"context"
	"errors"
	"time"

	"github.com/corebankhq/corebank/pkg/domain"
	domaintx "github.com/corebankhq/corebank/pkg/domain/transaction"
	"github.com/corebankhq/corebank/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a gorm-backed transaction repository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create persists the transaction record. The unique index on reference_id
// makes this the atomic check-and-reserve of the idempotency guard.
func (r *transactionRepository) Create(ctx context.Context, tx *domaintx.Transaction) error {
	row := Transaction{
		ReferenceID:   tx.ReferenceID,
		AccountNumber: tx.AccountNumber,
		TargetAccount: tx.TargetAccount,
		Amount:        tx.Amount,
		Type:          string(tx.Type),
		Narration:     tx.Narration,
		CreatedBy:     tx.CreatedBy,
		CreatedAt:     tx.CreatedAt,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domaintx.ErrDuplicate
	}
	return err
}

func (r *transactionRepository) GetByReference(ctx context.Context, referenceID string) (*domaintx.Transaction, error) {
	var row Transaction
	err := r.db.WithContext(ctx).First(&row, "reference_id = ?", referenceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapTransactionRow(&row), nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, number string, limit, offset int) ([]*domaintx.Transaction, error) {
	var rows []Transaction
	q := r.db.WithContext(ctx).
		Where("account_number = ? OR target_account = ?", number, number).
		Order("created_at DESC, id DESC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapTransactionRows(rows), nil
}

func (r *transactionRepository) ListByDay(ctx context.Context, day time.Time) ([]*domaintx.Transaction, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapTransactionRows(rows), nil
}

func mapTransactionRows(rows []Transaction) []*domaintx.Transaction {
	out := make([]*domaintx.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, mapTransactionRow(&rows[i]))
	}
	return out
}

func mapTransactionRow(row *Transaction) *domaintx.Transaction {
	return &domaintx.Transaction{
		ReferenceID:   row.ReferenceID,
		AccountNumber: row.AccountNumber,
		TargetAccount: row.TargetAccount,
		Amount:        row.Amount,
		Type:          domaintx.TxType(row.Type),
		Narration:     row.Narration,
		CreatedBy:     row.CreatedBy,
		CreatedAt:     row.CreatedAt,
	}
}
