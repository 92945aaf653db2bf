package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	domainledger "github.com/corebankhq/corebank/pkg/domain/ledger"
	domaintx "github.com/corebankhq/corebank/pkg/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestAccountRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	now := time.Now()
	customerID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "account_number", "account_type", "balance", "customer_id", "created_at", "updated_at",
	}).AddRow(1, "012345678", "SAVINGS", "250.00", customerID.String(), now, now)

	mock.ExpectQuery(`SELECT (.+) FROM "accounts" WHERE account_number = (.+) FOR UPDATE`).
		WillReturnRows(rows)

	a, err := repo.GetForUpdate(context.Background(), "012345678")
	require.NoError(t, err)
	assert.Equal(t, "012345678", a.Number)
	assert.True(t, a.Balance.Equal(decimal.NewFromFloat(250.00)))
	assert.Equal(t, customerID, a.CustomerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateBalance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	mock.ExpectExec(`UPDATE "accounts" SET (.+) WHERE account_number = (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateBalance(context.Background(), "012345678", decimal.NewFromInt(700))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}

	tx, err := domaintx.New("012345678", "", decimal.NewFromInt(100), domaintx.Deposit, "cash deposit", "teller-1")
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "transactions" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	require.NoError(t, repo.Create(context.Background(), tx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := transactionRepository{db: db}

	tx, err := domaintx.New("012345678", "", decimal.NewFromInt(100), domaintx.Deposit, "", "")
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO "transactions" (.+)`).
		WillReturnError(gorm.ErrDuplicatedKey)

	err = repo.Create(context.Background(), tx)
	assert.ErrorIs(t, err, domaintx.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_AppendPair(t *testing.T) {
	db, mock := newMockDB(t)
	repo := ledgerRepository{db: db}

	pair, err := domainledger.NewPair("012345678", "BANK_CASH_ACCOUNT", decimal.NewFromInt(300), "ref-1", "atm withdrawal")
	require.NoError(t, err)

	// both sides go in one insert
	mock.ExpectQuery(`INSERT INTO "ledger_entries" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	require.NoError(t, repo.AppendPair(context.Background(), pair))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_BalanceOf(t *testing.T) {
	db, mock := newMockDB(t)
	repo := ledgerRepository{db: db}

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN entry_type = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("170.00"))

	balance, err := repo.BalanceOf(context.Background(), "012345678")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromFloat(170.00)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
