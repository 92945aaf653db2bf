// Package webapi wires the HTTP surface of the money-movement engine.
// Authentication and authorization are handled by the API gateway in front
// of this service.
package webapi

import (
	"time"

	accountsvc "github.com/corebankhq/corebank/pkg/service/account"
	ledgersvc "github.com/corebankhq/corebank/pkg/service/ledger"
	reconsvc "github.com/corebankhq/corebank/pkg/service/reconciliation"
	txsvc "github.com/corebankhq/corebank/pkg/service/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles the service-layer dependencies of the HTTP handlers.
type Services struct {
	Accounts       *accountsvc.Service
	Transactions   *txsvc.Service
	Ledger         *ledgersvc.Service
	Reconciliation *reconsvc.Service
}

// NewApp builds the fiber application with middleware and all routes.
func NewApp(svcs Services) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	AccountRoutes(app, svcs.Accounts, svcs.Transactions, svcs.Ledger)
	TransactionRoutes(app, svcs.Transactions)
	ReconciliationRoutes(app, svcs.Reconciliation)

	return app
}
