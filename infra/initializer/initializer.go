// Package initializer assembles the infrastructure dependencies: logger,
// database connection, schema migration and the unit of work.
package initializer

import (
	"fmt"

	"github.com/wbsantos/abertura-contas/infra"
	infrarepository "github.com/wbsantos/abertura-contas/infra/repository"
	"github.com/wbsantos/abertura-contas/pkg/app"
	"github.com/wbsantos/abertura-contas/pkg/config"
)

// InitializeDependencies builds the app.Deps the service graph runs on.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{}
	deps.Logger = setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		deps.Logger.Error("failed to initialize database", "error", err)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := infra.AutoMigrate(db); err != nil {
		deps.Logger.Error("failed to migrate schema", "error", err)
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	deps.Uow = infrarepository.NewUoW(db)
	return deps, nil
}
