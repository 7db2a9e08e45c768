package main

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/wbsantos/abertura-contas/infra/initializer"
	"github.com/wbsantos/abertura-contas/pkg/app"
	"github.com/wbsantos/abertura-contas/pkg/config"
	"github.com/wbsantos/abertura-contas/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	a := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
	)
	return fiberApp.Listen(addr)
}
