package webapi

import (
	"time"

	"github.com/corebankhq/corebank/pkg/dto"
	reconsvc "github.com/corebankhq/corebank/pkg/service/reconciliation"
	"github.com/gofiber/fiber/v2"
)

// BatchReconcileRequest carries externally reported snapshots for offline
// reconciliation. Nothing in it touches core state.
type BatchReconcileRequest struct {
	Accounts         []dto.AccountSnapshot            `json:"accounts" validate:"required"`
	EntriesByAccount map[string][]dto.LedgerEntryRead `json:"ledgerEntriesByAccount"`
}

// ReconciliationRoutes registers reconciliation and reporting endpoints.
//
// Routes:
//   - GET  /reconciliation                : Reconcile every account against the journal.
//   - GET  /reconciliation/:number        : Reconcile one account.
//   - POST /reconciliation/batch          : Reconcile externally supplied snapshots.
//   - GET  /reports/daily?date=2006-01-02 : Daily transaction totals.
func ReconciliationRoutes(app *fiber.App, recon *reconsvc.Service) {
	app.Get("/reconciliation", ReconcileAll(recon))
	app.Get("/reconciliation/:number", ReconcileAccount(recon))
	app.Post("/reconciliation/batch", BatchReconcile(recon))
	app.Get("/reports/daily", DailyReport(recon))
}

// ReconcileAll returns a handler sweeping every stored account.
func ReconcileAll(recon *reconsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := recon.ReconcileAll(c.UserContext())
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Reconciliation report", report)
	}
}

// ReconcileAccount returns a handler reconciling one account.
func ReconcileAccount(recon *reconsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := recon.Reconcile(c.UserContext(), c.Params("number"))
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Reconciliation result", result)
	}
}

// BatchReconcile returns a handler reconciling externally supplied account
// snapshots against externally supplied ledger entries.
func BatchReconcile(recon *reconsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[BatchReconcileRequest](c)
		if input == nil {
			return err
		}
		report := recon.BatchReconcile(input.Accounts, input.EntriesByAccount)
		return SuccessResponseJSON(c, fiber.StatusOK, "Reconciliation report", report)
	}
}

// DailyReport returns a handler computing daily transaction totals. The date
// defaults to today.
func DailyReport(recon *reconsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := time.Now()
		if raw := c.Query("date"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid date", "expected YYYY-MM-DD")
			}
			day = parsed
		}
		report, err := recon.DailyReport(c.UserContext(), day)
		if err != nil {
			return ProblemFromError(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Daily transaction report", report)
	}
}
