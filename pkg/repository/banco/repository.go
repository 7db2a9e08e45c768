// Package banco defines the persistence contract for bancos.
package banco

import (
	"context"

	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Repository is the data access contract for bancos.
type Repository interface {
	Create(ctx context.Context, create *dto.BancoCreate) error
	Update(ctx context.Context, id uint, update *dto.BancoUpdate) error
	Get(ctx context.Context, id uint) (*dto.BancoRead, error)

	// List pages bancos ordered by nome; Busca matches nome.
	List(ctx context.Context, p list.Params) (*list.Page[dto.BancoRead], error)

	// All returns every banco ordered by nome, for form dropdowns.
	All(ctx context.Context) ([]dto.BancoRead, error)

	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
