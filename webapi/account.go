package webapi

import (
	"strconv"

	domainaccount "github.com/corebankhq/corebank/pkg/domain/account"
	accountsvc "github.com/corebankhq/corebank/pkg/service/account"
	ledgersvc "github.com/corebankhq/corebank/pkg/service/ledger"
	txsvc "github.com/corebankhq/corebank/pkg/service/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// OpenAccountRequest is the payload for opening an account.
type OpenAccountRequest struct {
	CustomerID  string `json:"customerId" validate:"required,uuid4"`
	AccountType string `json:"accountType" validate:"required,oneof=SAVINGS CURRENT"`
}

// AccountRoutes registers account-facing endpoints.
//
// Routes:
//   - POST /accounts                        : Open a new account.
//   - GET  /accounts                        : List all accounts.
//   - GET  /accounts/:number                : Get one account.
//   - GET  /accounts/:number/transactions   : List transactions touching the account.
//   - GET  /accounts/:number/ledger         : List journal entries for the account.
func AccountRoutes(app *fiber.App, accounts *accountsvc.Service, transactions *txsvc.Service, journal *ledgersvc.Service) {
	app.Post("/accounts", OpenAccount(accounts))
	app.Get("/accounts", ListAccounts(accounts))
	app.Get("/accounts/:number", GetAccount(accounts))
	app.Get("/accounts/:number/transactions", ListAccountTransactions(transactions))
	app.Get("/accounts/:number/ledger", ListAccountLedger(journal))
}

// OpenAccount returns a handler that opens a new account for a customer.
func OpenAccount(accounts *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err
		}
		customerID, err := uuid.Parse(input.CustomerID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid customer id", err.Error())
		}
		a, err := accounts.Open(c.UserContext(), customerID, domainaccount.Type(input.AccountType))
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Account opened", a)
	}
}

// ListAccounts returns a handler listing all accounts.
func ListAccounts(accounts *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all, err := accounts.List(c.UserContext())
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Accounts", all)
	}
}

// GetAccount returns a handler fetching one account by number.
func GetAccount(accounts *accountsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := accounts.Get(c.UserContext(), c.Params("number"))
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Account", a)
	}
}

// ListAccountTransactions returns a handler listing transactions for an
// account, newest first, paginated with ?limit= and ?offset=.
func ListAccountTransactions(transactions *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset := pagination(c)
		txs, err := transactions.ListByAccount(c.UserContext(), c.Params("number"), limit, offset)
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transactions", txs)
	}
}

// ListAccountLedger returns a handler listing journal entries for an
// account, newest first, paginated with ?limit= and ?offset=.
func ListAccountLedger(journal *ledgersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset := pagination(c)
		entries, err := journal.ListByAccount(c.UserContext(), c.Params("number"), limit, offset)
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Ledger entries", entries)
	}
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	limit = 50
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
