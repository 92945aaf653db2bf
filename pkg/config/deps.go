package config

import (
	"log/slog"

	"github.com/corebankhq/corebank/pkg/repository"
)

// Deps bundles the shared dependencies injected into the service layer.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
	Cfg    *AppConfig
}
