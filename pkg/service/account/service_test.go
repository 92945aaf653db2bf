package account_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/corebankhq/corebank/infra/repository/memory"
	"github.com/corebankhq/corebank/pkg/config"
	domainaccount "github.com/corebankhq/corebank/pkg/domain/account"
	accountsvc "github.com/corebankhq/corebank/pkg/service/account"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newTestService(t *testing.T) (*accountsvc.Service, *memory.UoW) {
	t.Helper()
	uow := memory.NewUoW()
	deps := config.Deps{
		Uow:    uow,
		Logger: slog.Default(),
		Cfg: &config.AppConfig{
			Bank: config.BankConfig{ClearingAccount: "BANK_CASH_ACCOUNT"},
		},
	}
	return accountsvc.NewService(deps), uow
}

func TestOpen(t *testing.T) {
	svc, _ := newTestService(t)
	customerID := uuid.New()

	a, err := svc.Open(context.Background(), customerID, domainaccount.TypeCurrent)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.AccountNumber, "012"))
	assert.Len(t, a.AccountNumber, 9)
	assert.Equal(t, "CURRENT", a.AccountType)
	assert.True(t, a.Balance.IsZero())
	assert.Equal(t, customerID, a.CustomerID)

	t.Run("numbers differ between openings", func(t *testing.T) {
		b, err := svc.Open(context.Background(), customerID, domainaccount.TypeSavings)
		require.NoError(t, err)
		assert.NotEqual(t, a.AccountNumber, b.AccountNumber)
	})
	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Open(context.Background(), customerID, domainaccount.Type("BOGUS"))
		assert.ErrorIs(t, err, domainaccount.ErrInvalidAccountType)
	})
}

func TestGet(t *testing.T) {
	svc, _ := newTestService(t)
	opened, err := svc.Open(context.Background(), uuid.New(), domainaccount.TypeSavings)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), opened.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, opened.AccountNumber, got.AccountNumber)

	t.Run("missing account", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "999999999")
		assert.ErrorIs(t, err, domainaccount.ErrAccountNotFound)
	})
}

func TestList(t *testing.T) {
	svc, _ := newTestService(t)
	for range 3 {
		_, err := svc.Open(context.Background(), uuid.New(), domainaccount.TypeSavings)
		require.NoError(t, err)
	}
	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEnsureClearingAccount(t *testing.T) {
	svc, uow := newTestService(t)

	require.NoError(t, svc.EnsureClearingAccount(context.Background()))

	accounts, err := uow.AccountRepository()
	require.NoError(t, err)
	clearing, err := accounts.Get(context.Background(), "BANK_CASH_ACCOUNT")
	require.NoError(t, err)
	assert.Equal(t, domainaccount.TypeInternal, clearing.Type)
	assert.True(t, clearing.Balance.IsZero())

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, svc.EnsureClearingAccount(context.Background()))
		all, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
