// Package conta provides the business logic for contas convênio. Creating
// one is the single place in the system where a remessa's situação changes
// automatically.
package conta

import (
	"context"
	"log/slog"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Service provides conta convênio operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a conta convênio Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Criar inserts the conta and flips its remessa to CONTA_ABERTA in one
// transaction. The flip happens regardless of the remessa's prior
// situação; a failure in either statement rolls both back, so the status
// can never disagree with the presence of the account row.
func (s *Service) Criar(ctx context.Context, create dto.ContaCreate) error {
	log := s.logger.With("context", "Criar", "id_remessa", create.IDRemessa)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		r, err := uow.Remessas().Get(ctx, create.IDRemessa)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNaoEncontrado
		}
		a, err := uow.Agencias().Get(ctx, create.IDAgencia)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNaoEncontrado
		}
		if err := uow.Contas().Create(ctx, &create); err != nil {
			log.Error("create failed", "error", err)
			return err
		}
		if err := uow.Remessas().AtualizarSituacao(ctx, create.IDRemessa, domain.SituacaoContaAberta); err != nil {
			log.Error("situação flip failed", "error", err)
			return err
		}
		log.Info("conta created, remessa flipped", "de", r.Situacao, "para", domain.SituacaoContaAberta)
		return nil
	})
}

// Get retrieves a conta by id; missing ids return domain.ErrNaoEncontrado.
func (s *Service) Get(ctx context.Context, id uint) (*dto.ContaRead, error) {
	c, err := s.uow.Contas().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return c, nil
}

// List pages contas ordered by dt_abertura descending.
func (s *Service) List(ctx context.Context, p list.Params) (*list.Page[dto.ContaRead], error) {
	return s.uow.Contas().List(ctx, p)
}

// Atualizar applies the update to an existing conta. Editing a conta does
// not touch any remessa's situação; only creation does. A repointed
// remessa or agência must exist.
func (s *Service) Atualizar(ctx context.Context, id uint, update dto.ContaUpdate) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Contas().Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNaoEncontrado
		}
		if update.IDRemessa != nil {
			r, err := uow.Remessas().Get(ctx, *update.IDRemessa)
			if err != nil {
				return err
			}
			if r == nil {
				return domain.ErrNaoEncontrado
			}
		}
		if update.IDAgencia != nil {
			a, err := uow.Agencias().Get(ctx, *update.IDAgencia)
			if err != nil {
				return err
			}
			if a == nil {
				return domain.ErrNaoEncontrado
			}
		}
		return uow.Contas().Update(ctx, id, &update)
	})
}

// Excluir deletes a conta. Contas have no dependents, so only existence is
// checked.
func (s *Service) Excluir(ctx context.Context, id uint) error {
	log := s.logger.With("context", "Excluir", "id_conta_convenio", id)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		c, err := uow.Contas().Get(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNaoEncontrado
		}
		if err := uow.Contas().Delete(ctx, id); err != nil {
			log.Error("delete failed", "error", err)
			return err
		}
		log.Info("conta deleted")
		return nil
	})
}
