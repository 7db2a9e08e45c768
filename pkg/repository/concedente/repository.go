// Package concedente defines the persistence contract for concedentes.
package concedente

import (
	"context"

	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Repository is the data access contract for concedentes.
type Repository interface {
	Create(ctx context.Context, create *dto.ConcedenteCreate) error
	Update(ctx context.Context, id uint, update *dto.ConcedenteUpdate) error
	Get(ctx context.Context, id uint) (*dto.ConcedenteRead, error)

	// List pages concedentes ordered by nome; Busca matches nome and sigla.
	List(ctx context.Context, p list.Params) (*list.Page[dto.ConcedenteRead], error)

	// All returns every concedente ordered by nome, for form dropdowns.
	All(ctx context.Context) ([]dto.ConcedenteRead, error)

	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
