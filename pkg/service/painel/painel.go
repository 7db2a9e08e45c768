// Package painel assembles the dashboard numbers: one total per entity
// plus the remessa count per situação.
package painel

import (
	"context"
	"log/slog"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
)

// Service computes the dashboard summary.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a painel Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Resumo returns the totals. Every situação appears in PorSituacao, zero
// included, so the view never misses a card.
func (s *Service) Resumo(ctx context.Context) (*dto.PainelResumo, error) {
	resumo := &dto.PainelResumo{
		PorSituacao: make(map[domain.Situacao]int64, len(domain.Situacoes())),
	}
	for _, situacao := range domain.Situacoes() {
		resumo.PorSituacao[situacao] = 0
	}

	var err error
	if resumo.TotalUsuarios, err = s.uow.Usuarios().Count(ctx); err != nil {
		return nil, err
	}
	if resumo.TotalBancos, err = s.uow.Bancos().Count(ctx); err != nil {
		return nil, err
	}
	if resumo.TotalAgencias, err = s.uow.Agencias().Count(ctx); err != nil {
		return nil, err
	}
	if resumo.TotalConcedentes, err = s.uow.Concedentes().Count(ctx); err != nil {
		return nil, err
	}
	if resumo.TotalRemessas, err = s.uow.Remessas().Count(ctx); err != nil {
		return nil, err
	}
	if resumo.TotalContas, err = s.uow.Contas().Count(ctx); err != nil {
		return nil, err
	}

	porSituacao, err := s.uow.Remessas().CountPorSituacao(ctx)
	if err != nil {
		return nil, err
	}
	for situacao, total := range porSituacao {
		resumo.PorSituacao[situacao] = total
	}
	return resumo, nil
}
