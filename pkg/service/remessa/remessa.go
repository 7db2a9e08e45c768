// Package remessa provides the business logic for remessas: sequential
// numbering at creation, free-form situação edits, and the delete guard
// against contas convênio.
package remessa

import (
	"context"
	"log/slog"
	"time"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Service provides remessa operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a remessa Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CriarInput carries the creation form. The sequential number and the
// owning usuário are not part of it: the service assigns both.
type CriarInput struct {
	NumProcesso    string
	NomeProponente string
	CpfCnpj        string
	NumConvenio    string
	Situacao       domain.Situacao
	IDConcedente   uint
	IDBanco        *uint
}

// Criar inserts a remessa with num_remessa = max(existing)+1, computed and
// inserted inside one transaction so concurrent creations cannot share a
// number. idUsuario comes from the session.
func (s *Service) Criar(ctx context.Context, in CriarInput, idUsuario uint) error {
	log := s.logger.With("context", "Criar", "num_processo", in.NumProcesso)
	situacao := in.Situacao
	if situacao == "" {
		situacao = domain.SituacaoEmPreparacao
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if err := verificarReferencias(ctx, uow, &in.IDConcedente, in.IDBanco); err != nil {
			return err
		}
		numero, err := uow.Remessas().ProximoNumero(ctx)
		if err != nil {
			return err
		}
		err = uow.Remessas().Create(ctx, &dto.RemessaCreate{
			NumProcesso:    in.NumProcesso,
			NomeProponente: in.NomeProponente,
			CpfCnpj:        in.CpfCnpj,
			NumConvenio:    in.NumConvenio,
			Situacao:       situacao,
			DtRemessa:      time.Now(),
			NumRemessa:     numero,
			IDConcedente:   in.IDConcedente,
			IDUsuario:      idUsuario,
			IDBanco:        in.IDBanco,
		})
		if err != nil {
			log.Error("create failed", "error", err)
			return err
		}
		log.Info("remessa created", "num_remessa", numero)
		return nil
	})
}

// Get retrieves a remessa, with joined display names, by id; missing ids
// return domain.ErrNaoEncontrado.
func (s *Service) Get(ctx context.Context, id uint) (*dto.RemessaRead, error) {
	r, err := s.uow.Remessas().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return r, nil
}

// List pages remessas ordered by dt_remessa descending.
func (s *Service) List(ctx context.Context, p list.Params) (*list.Page[dto.RemessaRead], error) {
	return s.uow.Remessas().List(ctx, p)
}

// All returns every remessa for the conta convênio form dropdown.
func (s *Service) All(ctx context.Context) ([]dto.RemessaRead, error) {
	return s.uow.Remessas().All(ctx)
}

// Atualizar applies the update. num_remessa is never touched, and the
// situação accepts any value: the workflow enforces no transition table.
func (s *Service) Atualizar(ctx context.Context, id uint, update dto.RemessaUpdate) error {
	log := s.logger.With("context", "Atualizar", "id_remessa", id)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		r, err := uow.Remessas().Get(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNaoEncontrado
		}
		idBanco := update.IDBanco
		if update.LimparBanco {
			idBanco = nil
		}
		if err := verificarReferencias(ctx, uow, update.IDConcedente, idBanco); err != nil {
			return err
		}
		if err := uow.Remessas().Update(ctx, id, &update); err != nil {
			log.Error("update failed", "error", err)
			return err
		}
		log.Info("remessa updated")
		return nil
	})
}

// verificarReferencias confirms the concedente and banco rows a remessa
// points at exist. Nil arguments are skipped; a dangling id returns
// domain.ErrNaoEncontrado before anything is written.
func verificarReferencias(ctx context.Context, uow repository.UnitOfWork, idConcedente, idBanco *uint) error {
	if idConcedente != nil {
		c, err := uow.Concedentes().Get(ctx, *idConcedente)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNaoEncontrado
		}
	}
	if idBanco != nil {
		b, err := uow.Bancos().Get(ctx, *idBanco)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNaoEncontrado
		}
	}
	return nil
}

// Excluir deletes a remessa unless contas convênio still reference it.
func (s *Service) Excluir(ctx context.Context, id uint) error {
	log := s.logger.With("context", "Excluir", "id_remessa", id)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		r, err := uow.Remessas().Get(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNaoEncontrado
		}
		dependentes, err := uow.Contas().CountByRemessa(ctx, id)
		if err != nil {
			return err
		}
		if dependentes > 0 {
			log.Warn("delete blocked by contas", "dependentes", dependentes)
			return domain.ErrPossuiDependentes
		}
		if err := uow.Remessas().Delete(ctx, id); err != nil {
			log.Error("delete failed", "error", err)
			return err
		}
		log.Info("remessa deleted")
		return nil
	})
}
