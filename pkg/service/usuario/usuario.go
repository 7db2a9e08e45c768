// Package usuario provides the business logic for usuário management:
// registration, administration and the delete guard against remessas.
package usuario

import (
	"context"
	"log/slog"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	"github.com/wbsantos/abertura-contas/pkg/utils"
)

// Service provides usuário operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a usuário Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// RegistroInput carries the registration form. Senha is the plain
// password; it is hashed before persisting.
type RegistroInput struct {
	Nome        string
	Matricula   string
	Email       string
	Instituicao string
	Login       string
	Senha       string
	Perfil      domain.Perfil
}

// Registrar creates a usuário after checking, in a single count query,
// that no row already holds the login, email or matrícula. Conflicts
// return domain.ErrDuplicado and nothing is inserted.
func (s *Service) Registrar(ctx context.Context, in RegistroInput) error {
	log := s.logger.With("context", "Registrar")
	perfil := in.Perfil
	if perfil == "" {
		perfil = domain.PerfilMonitor
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		conflitos, err := uow.Usuarios().CountConflitos(ctx, in.Login, in.Email, in.Matricula)
		if err != nil {
			return err
		}
		if conflitos > 0 {
			log.Warn("registration conflict", "login", in.Login)
			return domain.ErrDuplicado
		}
		hash, err := utils.HashPassword(in.Senha)
		if err != nil {
			return err
		}
		err = uow.Usuarios().Create(ctx, &dto.UsuarioCreate{
			Nome:        in.Nome,
			Matricula:   in.Matricula,
			Email:       in.Email,
			Instituicao: in.Instituicao,
			Login:       in.Login,
			Senha:       hash,
			Perfil:      perfil,
			Status:      domain.StatusAtivo,
		})
		if err != nil {
			log.Error("registration insert failed", "login", in.Login, "error", err)
			return err
		}
		log.Info("usuário registered", "login", in.Login, "perfil", perfil)
		return nil
	})
}

// Get retrieves a usuário by id; missing ids return domain.ErrNaoEncontrado.
func (s *Service) Get(ctx context.Context, id uint) (*dto.UsuarioRead, error) {
	u, err := s.uow.Usuarios().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNaoEncontrado
	}
	u.SenhaHash = ""
	return u, nil
}

// List pages usuários ordered by nome.
func (s *Service) List(ctx context.Context, p list.Params) (*list.Page[dto.UsuarioRead], error) {
	return s.uow.Usuarios().List(ctx, p)
}

// Atualizar applies the update; NovaSenha, when set, replaces the stored
// hash.
func (s *Service) Atualizar(ctx context.Context, id uint, update dto.UsuarioUpdate, novaSenha string) error {
	log := s.logger.With("context", "Atualizar", "id_usuario", id)
	if novaSenha != "" {
		hash, err := utils.HashPassword(novaSenha)
		if err != nil {
			return err
		}
		update.Senha = &hash
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.Usuarios().Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNaoEncontrado
		}
		if err := uow.Usuarios().Update(ctx, id, &update); err != nil {
			log.Error("update failed", "error", err)
			return err
		}
		log.Info("usuário updated")
		return nil
	})
}

// Excluir deletes a usuário unless remessas still reference it.
func (s *Service) Excluir(ctx context.Context, id uint) error {
	log := s.logger.With("context", "Excluir", "id_usuario", id)
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.Usuarios().Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNaoEncontrado
		}
		dependentes, err := uow.Remessas().CountByUsuario(ctx, id)
		if err != nil {
			return err
		}
		if dependentes > 0 {
			log.Warn("delete blocked by remessas", "dependentes", dependentes)
			return domain.ErrPossuiDependentes
		}
		if err := uow.Usuarios().Delete(ctx, id); err != nil {
			log.Error("delete failed", "error", err)
			return err
		}
		log.Info("usuário deleted")
		return nil
	})
}
