package main

import (
	"context"
	"fmt"
	"log/slog"

	infra "github.com/corebankhq/corebank/infra"
	infrarepo "github.com/corebankhq/corebank/infra/repository"
	"github.com/corebankhq/corebank/pkg/config"
	accountsvc "github.com/corebankhq/corebank/pkg/service/account"
	ledgersvc "github.com/corebankhq/corebank/pkg/service/ledger"
	reconsvc "github.com/corebankhq/corebank/pkg/service/reconciliation"
	txsvc "github.com/corebankhq/corebank/pkg/service/transaction"
	"github.com/corebankhq/corebank/webapi"
	log "github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()
	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infrarepo.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	deps := config.Deps{
		Uow:    infrarepo.NewUoW(db),
		Logger: logger,
		Cfg:    cfg,
	}
	accounts := accountsvc.NewService(deps)
	transactions := txsvc.NewService(deps)
	journal := ledgersvc.NewService(deps)
	reconciliation := reconsvc.NewService(deps)

	ctx := context.Background()
	if err := accounts.EnsureClearingAccount(ctx); err != nil {
		return fmt.Errorf("failed to provision clearing account: %w", err)
	}

	if cfg.Bank.ReconcileSchedule != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(cfg.Bank.ReconcileSchedule, func() {
			reconciliation.Sweep(context.Background())
		}); err != nil {
			return fmt.Errorf("invalid reconcile schedule %q: %w", cfg.Bank.ReconcileSchedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	app := webapi.NewApp(webapi.Services{
		Accounts:       accounts,
		Transactions:   transactions,
		Ledger:         journal,
		Reconciliation: reconciliation,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
