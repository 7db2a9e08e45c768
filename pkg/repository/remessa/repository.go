// Package remessa defines the persistence contract for remessas.
package remessa

import (
	"context"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Repository is the data access contract for remessas. Reads come joined
// with the display names of concedente, usuário and banco.
type Repository interface {
	Create(ctx context.Context, create *dto.RemessaCreate) error
	Update(ctx context.Context, id uint, update *dto.RemessaUpdate) error
	Get(ctx context.Context, id uint) (*dto.RemessaRead, error)

	// List pages remessas ordered by dt_remessa descending; Busca matches
	// num_processo and nome_proponente; Filtro matches situação exactly.
	List(ctx context.Context, p list.Params) (*list.Page[dto.RemessaRead], error)

	// All returns every remessa ordered by num_processo, for the conta
	// convênio form dropdown.
	All(ctx context.Context) ([]dto.RemessaRead, error)

	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	// ProximoNumero returns COALESCE(MAX(num_remessa), 0) + 1. Called
	// inside the creation transaction so two creations cannot share a
	// number.
	ProximoNumero(ctx context.Context) (int, error)

	// AtualizarSituacao sets the workflow state of a remessa,
	// unconditionally.
	AtualizarSituacao(ctx context.Context, id uint, s domain.Situacao) error

	// CountPorSituacao returns the remessa count per workflow state, for
	// the dashboard.
	CountPorSituacao(ctx context.Context) (map[domain.Situacao]int64, error)

	// Delete guards of the entities a remessa references.
	CountByBanco(ctx context.Context, idBanco uint) (int64, error)
	CountByConcedente(ctx context.Context, idConcedente uint) (int64, error)
	CountByUsuario(ctx context.Context, idUsuario uint) (int64, error)
}
