package webapi

import (
	domaintx "github.com/corebankhq/corebank/pkg/domain/transaction"
	txsvc "github.com/corebankhq/corebank/pkg/service/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the inbound money-movement intent. The
// reference id is never client-supplied; the coordinator generates it.
type CreateTransactionRequest struct {
	AccountNumber string          `json:"accountNumber" validate:"required"`
	TargetAccount string          `json:"targetAccount"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Type          string          `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Narration     string          `json:"narration"`
	CreatedBy     string          `json:"createdBy"`
}

// TransactionRoutes registers money-movement endpoints.
//
// Routes:
//   - POST /transactions                : Commit a deposit, withdrawal or transfer.
//   - GET  /transactions/:referenceId   : Fetch a committed transaction.
func TransactionRoutes(app *fiber.App, transactions *txsvc.Service) {
	app.Post("/transactions", CreateTransaction(transactions))
	app.Get("/transactions/:referenceId", GetTransaction(transactions))
}

// CreateTransaction returns a handler committing a money movement. All
// rejections carry the error kind so the gateway can distinguish outcomes.
func CreateTransaction(transactions *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		tx, err := transactions.Create(c.UserContext(), txsvc.CreateRequest{
			AccountNumber: input.AccountNumber,
			TargetAccount: input.TargetAccount,
			Amount:        input.Amount,
			Type:          domaintx.TxType(input.Type),
			Narration:     input.Narration,
			CreatedBy:     input.CreatedBy,
		})
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Transaction committed", tx)
	}
}

// GetTransaction returns a handler fetching one committed transaction.
func GetTransaction(transactions *txsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tx, err := transactions.GetByReference(c.UserContext(), c.Params("referenceId"))
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transaction", tx)
	}
}
