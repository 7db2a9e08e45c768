// Package agencia provides the business logic for agências, including the
// delete guard against contas convênio.
package agencia

import (
	"context"
	"log/slog"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Service provides agência operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an agência Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Criar inserts a new agência after confirming the banco exists.
func (s *Service) Criar(ctx context.Context, create dto.AgenciaCreate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		b, err := uow.Bancos().Get(ctx, create.IDBanco)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNaoEncontrado
		}
		return uow.Agencias().Create(ctx, &create)
	})
}

// Get retrieves an agência by id; missing ids return domain.ErrNaoEncontrado.
func (s *Service) Get(ctx context.Context, id uint) (*dto.AgenciaRead, error) {
	a, err := s.uow.Agencias().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return a, nil
}

// List pages agências ordered by nome_agencia.
func (s *Service) List(ctx context.Context, p list.Params) (*list.Page[dto.AgenciaRead], error) {
	return s.uow.Agencias().List(ctx, p)
}

// All returns every agência for form dropdowns.
func (s *Service) All(ctx context.Context) ([]dto.AgenciaRead, error) {
	return s.uow.Agencias().All(ctx)
}

// Atualizar applies the update to an existing agência.
func (s *Service) Atualizar(ctx context.Context, id uint, update dto.AgenciaUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := uow.Agencias().Get(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNaoEncontrado
		}
		return uow.Agencias().Update(ctx, id, &update)
	})
}

// Excluir deletes an agência unless contas convênio still reference it.
func (s *Service) Excluir(ctx context.Context, id uint) error {
	log := s.logger.With("context", "Excluir", "id_agencia", id)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := uow.Agencias().Get(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNaoEncontrado
		}
		dependentes, err := uow.Contas().CountByAgencia(ctx, id)
		if err != nil {
			return err
		}
		if dependentes > 0 {
			log.Warn("delete blocked by contas", "dependentes", dependentes)
			return domain.ErrPossuiDependentes
		}
		if err := uow.Agencias().Delete(ctx, id); err != nil {
			log.Error("delete failed", "error", err)
			return err
		}
		log.Info("agência deleted")
		return nil
	})
}
