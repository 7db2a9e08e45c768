// Package auth provides login credential checking and the two-stage
// password-reset flow.
package auth

import (
	"context"
	"log/slog"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/utils"
)

// Service authenticates usuários and resets passwords.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates an auth Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Login checks the credentials and returns the usuário on success. Every
// failure path returns domain.ErrCredenciaisInvalidas so the caller cannot
// tell an unknown login from a wrong password.
func (s *Service) Login(ctx context.Context, login, senha string) (*dto.UsuarioRead, error) {
	log := s.logger.With("context", "Login")
	if login == "" || senha == "" {
		return nil, domain.ErrCredenciaisInvalidas
	}
	u, err := s.uow.Usuarios().GetByLogin(ctx, login)
	if err != nil {
		log.Error("login lookup failed", "error", err)
		return nil, err
	}
	if u == nil || !utils.CheckPasswordHash(senha, u.SenhaHash) {
		log.Warn("login rejected", "login", login)
		return nil, domain.ErrCredenciaisInvalidas
	}
	log.Info("login successful", "id_usuario", u.ID)
	u.SenhaHash = ""
	return u, nil
}

// VerificarEmail is stage one of the password reset: it reports whether a
// usuário with the given email exists.
func (s *Service) VerificarEmail(ctx context.Context, email string) (bool, error) {
	if !utils.IsEmail(email) {
		return false, nil
	}
	u, err := s.uow.Usuarios().GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

// RedefinirSenha is stage two of the password reset: it stores the new
// password hash for the usuário holding the email. Blank input and a
// mismatched confirmation are rejected before any lookup.
func (s *Service) RedefinirSenha(ctx context.Context, email, novaSenha, confirmacao string) error {
	log := s.logger.With("context", "RedefinirSenha")
	if novaSenha == "" || confirmacao == "" {
		return domain.ErrCampoObrigatorio
	}
	if novaSenha != confirmacao {
		return domain.ErrSenhasNaoConferem
	}
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		u, err := uow.Usuarios().GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.ErrNaoEncontrado
		}
		hash, err := utils.HashPassword(novaSenha)
		if err != nil {
			return err
		}
		if err := uow.Usuarios().Update(ctx, u.ID, &dto.UsuarioUpdate{Senha: &hash}); err != nil {
			log.Error("password update failed", "id_usuario", u.ID, "error", err)
			return err
		}
		log.Info("password redefined", "id_usuario", u.ID)
		return nil
	})
}
