// Package concedente provides the business logic for concedentes,
// including the delete guard against remessas.
package concedente

import (
	"context"
	"log/slog"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Service provides concedente operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a concedente Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Criar inserts a new concedente. A duplicated código da secretaria
// returns domain.ErrDuplicado.
func (s *Service) Criar(ctx context.Context, create dto.ConcedenteCreate) error {
	return s.uow.Concedentes().Create(ctx, &create)
}

// Get retrieves a concedente by id; missing ids return
// domain.ErrNaoEncontrado.
func (s *Service) Get(ctx context.Context, id uint) (*dto.ConcedenteRead, error) {
	c, err := s.uow.Concedentes().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return c, nil
}

// List pages concedentes ordered by nome.
func (s *Service) List(ctx context.Context, p list.Params) (*list.Page[dto.ConcedenteRead], error) {
	return s.uow.Concedentes().List(ctx, p)
}

// All returns every concedente for form dropdowns.
func (s *Service) All(ctx context.Context) ([]dto.ConcedenteRead, error) {
	return s.uow.Concedentes().All(ctx)
}

// Atualizar applies the update to an existing concedente.
func (s *Service) Atualizar(ctx context.Context, id uint, update dto.ConcedenteUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Concedentes().Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNaoEncontrado
		}
		return uow.Concedentes().Update(ctx, id, &update)
	})
}

// Excluir deletes a concedente unless remessas still reference it.
func (s *Service) Excluir(ctx context.Context, id uint) error {
	log := s.logger.With("context", "Excluir", "id_concedente", id)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Concedentes().Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNaoEncontrado
		}
		dependentes, err := uow.Remessas().CountByConcedente(ctx, id)
		if err != nil {
			return err
		}
		if dependentes > 0 {
			log.Warn("delete blocked by remessas", "dependentes", dependentes)
			return domain.ErrPossuiDependentes
		}
		if err := uow.Concedentes().Delete(ctx, id); err != nil {
			log.Error("delete failed", "error", err)
			return err
		}
		log.Info("concedente deleted")
		return nil
	})
}
