// Package usuario defines the persistence contract for usuários.
package usuario

import (
	"context"

	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Repository is the data access contract for usuários. Get-style methods
// return (nil, nil) when no row matches.
type Repository interface {
	// Create inserts a new usuário from a DTO.
	Create(ctx context.Context, create *dto.UsuarioCreate) error

	// Update applies the non-nil fields of the DTO to the usuário.
	Update(ctx context.Context, id uint, update *dto.UsuarioUpdate) error

	// Get retrieves a usuário by id.
	Get(ctx context.Context, id uint) (*dto.UsuarioRead, error)

	// GetByLogin retrieves a usuário by login, hash included, for
	// credential checks.
	GetByLogin(ctx context.Context, login string) (*dto.UsuarioRead, error)

	// GetByEmail retrieves a usuário by email, for the password-reset flow.
	GetByEmail(ctx context.Context, email string) (*dto.UsuarioRead, error)

	// List pages usuários ordered by nome. Busca matches nome and login;
	// Filtro matches perfil exactly.
	List(ctx context.Context, p list.Params) (*list.Page[dto.UsuarioRead], error)

	// Delete removes a usuário. Returns domain.ErrNaoEncontrado when no
	// row was affected.
	Delete(ctx context.Context, id uint) error

	// CountConflitos counts rows holding the given login OR email OR
	// matrícula, in a single query, for registration uniqueness.
	CountConflitos(ctx context.Context, login, email, matricula string) (int64, error)

	// Count returns the total number of usuários.
	Count(ctx context.Context) (int64, error)
}
