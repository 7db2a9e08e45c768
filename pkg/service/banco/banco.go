// Package banco provides the business logic for bancos, including the
// delete guard against agências and remessas.
package banco

import (
	"context"
	"log/slog"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Service provides banco operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a banco Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Criar inserts a new banco.
func (s *Service) Criar(ctx context.Context, nome string) error {
	if nome == "" {
		return domain.ErrCampoObrigatorio
	}
	return s.uow.Bancos().Create(ctx, &dto.BancoCreate{Nome: nome})
}

// Get retrieves a banco by id; missing ids return domain.ErrNaoEncontrado.
func (s *Service) Get(ctx context.Context, id uint) (*dto.BancoRead, error) {
	b, err := s.uow.Bancos().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return b, nil
}

// List pages bancos ordered by nome.
func (s *Service) List(ctx context.Context, p list.Params) (*list.Page[dto.BancoRead], error) {
	return s.uow.Bancos().List(ctx, p)
}

// All returns every banco for form dropdowns.
func (s *Service) All(ctx context.Context) ([]dto.BancoRead, error) {
	return s.uow.Bancos().All(ctx)
}

// Atualizar renames a banco.
func (s *Service) Atualizar(ctx context.Context, id uint, nome string) error {
	if nome == "" {
		return domain.ErrCampoObrigatorio
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		b, err := uow.Bancos().Get(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNaoEncontrado
		}
		return uow.Bancos().Update(ctx, id, &dto.BancoUpdate{Nome: &nome})
	})
}

// Excluir deletes a banco unless agências or remessas still reference it.
func (s *Service) Excluir(ctx context.Context, id uint) error {
	log := s.logger.With("context", "Excluir", "id_banco", id)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		b, err := uow.Bancos().Get(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNaoEncontrado
		}
		agencias, err := uow.Agencias().CountByBanco(ctx, id)
		if err != nil {
			return err
		}
		remessas, err := uow.Remessas().CountByBanco(ctx, id)
		if err != nil {
			return err
		}
		if agencias > 0 || remessas > 0 {
			log.Warn("delete blocked", "agencias", agencias, "remessas", remessas)
			return domain.ErrPossuiDependentes
		}
		if err := uow.Bancos().Delete(ctx, id); err != nil {
			log.Error("delete failed", "error", err)
			return err
		}
		log.Info("banco deleted")
		return nil
	})
}
