// Package app wires configuration, infrastructure and services into the
// dependency graph consumed by the web layer and the CLIs.
package app

import (
	"log/slog"

	"github.com/wbsantos/abertura-contas/pkg/config"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/service/agencia"
	"github.com/wbsantos/abertura-contas/pkg/service/auth"
	"github.com/wbsantos/abertura-contas/pkg/service/banco"
	"github.com/wbsantos/abertura-contas/pkg/service/concedente"
	"github.com/wbsantos/abertura-contas/pkg/service/conta"
	"github.com/wbsantos/abertura-contas/pkg/service/painel"
	"github.com/wbsantos/abertura-contas/pkg/service/relatorio"
	"github.com/wbsantos/abertura-contas/pkg/service/remessa"
	"github.com/wbsantos/abertura-contas/pkg/service/usuario"
)

// Deps contains the external dependencies the services are built on.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// App aggregates every service behind a single handle.
type App struct {
	Deps   *Deps
	Config *config.App

	AuthService       *auth.Service
	UsuarioService    *usuario.Service
	BancoService      *banco.Service
	AgenciaService    *agencia.Service
	ConcedenteService *concedente.Service
	RemessaService    *remessa.Service
	ContaService      *conta.Service
	PainelService     *painel.Service
	RelatorioService  *relatorio.Service
}

// New builds the service graph from deps and cfg.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:              deps,
		Config:            cfg,
		AuthService:       auth.New(deps.Uow, deps.Logger),
		UsuarioService:    usuario.New(deps.Uow, deps.Logger),
		BancoService:      banco.New(deps.Uow, deps.Logger),
		AgenciaService:    agencia.New(deps.Uow, deps.Logger),
		ConcedenteService: concedente.New(deps.Uow, deps.Logger),
		RemessaService:    remessa.New(deps.Uow, deps.Logger),
		ContaService:      conta.New(deps.Uow, deps.Logger),
		PainelService:     painel.New(deps.Uow, deps.Logger),
		RelatorioService:  relatorio.New(deps.Uow, deps.Logger),
	}
}
