package webapi_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/corebankhq/corebank/infra/repository/memory"
	"github.com/corebankhq/corebank/pkg/config"
	domainaccount "github.com/corebankhq/corebank/pkg/domain/account"
	accountsvc "github.com/corebankhq/corebank/pkg/service/account"
	ledgersvc "github.com/corebankhq/corebank/pkg/service/ledger"
	reconsvc "github.com/corebankhq/corebank/pkg/service/reconciliation"
	txsvc "github.com/corebankhq/corebank/pkg/service/transaction"
	"github.com/corebankhq/corebank/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*fiber.App, *memory.UoW) {
	t.Helper()
	uow := memory.NewUoW()
	deps := config.Deps{
		Uow:    uow,
		Logger: slog.Default(),
		Cfg: &config.AppConfig{
			Bank: config.BankConfig{ClearingAccount: "BANK_CASH_ACCOUNT"},
		},
	}
	accounts := accountsvc.NewService(deps)
	require.NoError(t, accounts.EnsureClearingAccount(context.Background()))
	app := webapi.NewApp(webapi.Services{
		Accounts:       accounts,
		Transactions:   txsvc.NewService(deps),
		Ledger:         ledgersvc.NewService(deps),
		Reconciliation: reconsvc.NewService(deps),
	})
	return app, uow
}

func seedAccount(t *testing.T, uow *memory.UoW, number string, balance int64) {
	t.Helper()
	a, err := domainaccount.New().
		WithNumber(number).
		WithCustomerID(uuid.New()).
		WithBalance(decimal.NewFromInt(balance)).
		Build()
	require.NoError(t, err)
	accounts, err := uow.AccountRepository()
	require.NoError(t, err)
	require.NoError(t, accounts.Create(context.Background(), a))
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateTransactionEndpoint(t *testing.T) {
	app, uow := newTestApp(t)
	seedAccount(t, uow, "ACC1", 1000)
	seedAccount(t, uow, "ACC2", 0)

	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{
			desc:       "deposit success",
			body:       `{"accountNumber":"ACC1","amount":100,"type":"DEPOSIT","narration":"cash"}`,
			wantStatus: fiber.StatusCreated,
		},
		{
			desc:       "transfer success",
			body:       `{"accountNumber":"ACC1","targetAccount":"ACC2","amount":200,"type":"TRANSFER"}`,
			wantStatus: fiber.StatusCreated,
		},
		{
			desc:       "self transfer rejected",
			body:       `{"accountNumber":"ACC1","targetAccount":"ACC1","amount":10,"type":"TRANSFER"}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc:       "insufficient funds",
			body:       `{"accountNumber":"ACC2","amount":99999,"type":"WITHDRAWAL"}`,
			wantStatus: fiber.StatusUnprocessableEntity,
		},
		{
			desc:       "unknown type fails validation",
			body:       `{"accountNumber":"ACC1","amount":10,"type":"REVERSAL"}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc:       "unknown account",
			body:       `{"accountNumber":"NOPE","amount":10,"type":"DEPOSIT"}`,
			wantStatus: fiber.StatusNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			resp := doJSON(t, app, "POST", "/transactions", tc.body)
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestTransactionResponseShape(t *testing.T) {
	app, uow := newTestApp(t)
	seedAccount(t, uow, "ACC1", 0)

	resp := doJSON(t, app, "POST", "/transactions",
		`{"accountNumber":"ACC1","amount":100,"type":"DEPOSIT","narration":"cash","createdBy":"teller-1"}`)
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var envelope webapi.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["referenceId"])
	assert.Equal(t, "ACC1", data["accountNumber"])
	assert.Equal(t, "DEPOSIT", data["type"])
	assert.NotEmpty(t, data["timestamp"])
}

func TestAccountEndpoints(t *testing.T) {
	app, uow := newTestApp(t)
	seedAccount(t, uow, "ACC1", 500)

	t.Run("get account", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/accounts/ACC1", "")
		defer resp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
	t.Run("missing account", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/accounts/NOPE", "")
		defer resp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
	t.Run("open account", func(t *testing.T) {
		body := `{"customerId":"` + uuid.NewString() + `","accountType":"SAVINGS"}`
		resp := doJSON(t, app, "POST", "/accounts", body)
		defer resp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	})
	t.Run("open account rejects bad type", func(t *testing.T) {
		body := `{"customerId":"` + uuid.NewString() + `","accountType":"BOGUS"}`
		resp := doJSON(t, app, "POST", "/accounts", body)
		defer resp.Body.Close() //nolint:errcheck
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestReconciliationEndpoints(t *testing.T) {
	app, uow := newTestApp(t)
	seedAccount(t, uow, "ACC1", 0)

	resp := doJSON(t, app, "POST", "/transactions",
		`{"accountNumber":"ACC1","amount":100,"type":"DEPOSIT"}`)
	resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	t.Run("single account", func(t *testing.T) {
		resp := doJSON(t, app, "GET", "/reconciliation/ACC1", "")
		defer resp.Body.Close() //nolint:errcheck
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var envelope webapi.Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, true, data["match"])
	})
	t.Run("batch", func(t *testing.T) {
		body := `{
			"accounts":[{"accountNumber":"X","balance":50}],
			"ledgerEntriesByAccount":{"X":[{"accountNumber":"X","amount":40,"entryType":"CREDIT"}]}
		}`
		resp := doJSON(t, app, "POST", "/reconciliation/batch", body)
		defer resp.Body.Close() //nolint:errcheck
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var envelope webapi.Response
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(1), data["totalMismatches"])
	})
}
