// Package account provides business logic for opening and querying accounts.
package account

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/corebankhq/corebank/pkg/config"
	"github.com/corebankhq/corebank/pkg/domain/account"
	"github.com/corebankhq/corebank/pkg/dto"
	"github.com/corebankhq/corebank/pkg/repository"
	"github.com/google/uuid"
)

// accountNumberPrefix mirrors the bank's branch code prefix.
const accountNumberPrefix = "012"

// Service provides account opening, lookup and listing.
type Service struct {
	uow             repository.UnitOfWork
	clearingAccount string
	logger          *slog.Logger
}

// NewService creates a new account Service.
func NewService(deps config.Deps) *Service {
	return &Service{
		uow:             deps.Uow,
		clearingAccount: deps.Cfg.Bank.ClearingAccount,
		logger:          deps.Logger,
	}
}

// Open creates a new account for the customer. The account number is drawn
// from a random space and uniqueness is enforced by the store's unique index
// rather than a retry loop.
func (s *Service) Open(ctx context.Context, customerID uuid.UUID, accType account.Type) (*dto.AccountRead, error) {
	number, err := generateAccountNumber()
	if err != nil {
		return nil, err
	}
	a, err := account.New().
		WithNumber(number).
		WithType(accType).
		WithCustomerID(customerID).
		Build()
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return accounts.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account opened", "account", a.Number, "type", a.Type, "customer", customerID)
	return mapAccount(a), nil
}

// Get returns the account or account.ErrAccountNotFound.
func (s *Service) Get(ctx context.Context, number string) (*dto.AccountRead, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	a, err := accounts.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	return mapAccount(a), nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]*dto.AccountRead, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	all, err := accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AccountRead, 0, len(all))
	for _, a := range all {
		out = append(out, mapAccount(a))
	}
	return out, nil
}

// EnsureClearingAccount provisions the bank's cash clearing account if it
// does not exist yet. The coordinator later looks it up like any other
// account, so there is no global mutable state to carry around.
func (s *Service) EnsureClearingAccount(ctx context.Context) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		_, err = accounts.Get(ctx, s.clearingAccount)
		if err == nil {
			return nil
		}
		if !errors.Is(err, account.ErrAccountNotFound) {
			return err
		}
		clearing, err := account.New().
			WithNumber(s.clearingAccount).
			WithType(account.TypeInternal).
			Build()
		if err != nil {
			return err
		}
		if err := accounts.Create(ctx, clearing); err != nil {
			return err
		}
		s.logger.Info("clearing account provisioned", "account", s.clearingAccount)
		return nil
	})
}

// generateAccountNumber draws a 9-digit account number from crypto/rand.
// The space is large enough that collisions fall to the unique index.
func generateAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", accountNumberPrefix, n.Int64()), nil
}

func mapAccount(a *account.Account) *dto.AccountRead {
	return &dto.AccountRead{
		AccountNumber: a.Number,
		AccountType:   string(a.Type),
		Balance:       a.Balance,
		CustomerID:    a.CustomerID,
		CreatedAt:     a.CreatedAt,
	}
}
