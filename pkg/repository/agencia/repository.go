// Package agencia defines the persistence contract for agências.
package agencia

import (
	"context"

	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Repository is the data access contract for agências. Reads come joined
// with the owning banco's nome.
type Repository interface {
	Create(ctx context.Context, create *dto.AgenciaCreate) error
	Update(ctx context.Context, id uint, update *dto.AgenciaUpdate) error
	Get(ctx context.Context, id uint) (*dto.AgenciaRead, error)

	// List pages agências ordered by nome_agencia; Busca matches
	// nome_agencia and cidade.
	List(ctx context.Context, p list.Params) (*list.Page[dto.AgenciaRead], error)

	// All returns every agência ordered by nome_agencia, for form dropdowns.
	All(ctx context.Context) ([]dto.AgenciaRead, error)

	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	// CountByBanco counts agências referencing a banco, for the banco
	// delete guard.
	CountByBanco(ctx context.Context, idBanco uint) (int64, error)
}
