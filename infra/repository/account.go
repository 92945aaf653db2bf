package repository

import (
	"context"
	"errors"

	"github.com/corebankhq/corebank/pkg/domain"
	domainaccount "github.com/corebankhq/corebank/pkg/domain/account"
	"github.com/corebankhq/corebank/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a gorm-backed account repository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *domainaccount.Account) error {
	row := Account{
		AccountNumber: a.Number,
		AccountType:   string(a.Type),
		Balance:       a.Balance,
		CustomerID:    a.CustomerID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *accountRepository) Get(ctx context.Context, number string) (*domainaccount.Account, error) {
	var row Account
	err := r.db.WithContext(ctx).First(&row, "account_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainaccount.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapAccountRow(&row)
}

func (r *accountRepository) GetForUpdate(ctx context.Context, number string) (*domainaccount.Account, error) {
	var row Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, "account_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainaccount.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return mapAccountRow(&row)
}

func (r *accountRepository) UpdateBalance(ctx context.Context, number string, balance decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("account_number = ?", number).
		Update("balance", balance)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainaccount.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context) ([]*domainaccount.Account, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).Order("account_number").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domainaccount.Account, 0, len(rows))
	for i := range rows {
		a, err := mapAccountRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func mapAccountRow(row *Account) (*domainaccount.Account, error) {
	return domainaccount.New().
		WithNumber(row.AccountNumber).
		WithType(domainaccount.Type(row.AccountType)).
		WithBalance(row.Balance).
		WithCustomerID(row.CustomerID).
		WithCreatedAt(row.CreatedAt).
		WithUpdatedAt(row.UpdatedAt).
		Build()
}
