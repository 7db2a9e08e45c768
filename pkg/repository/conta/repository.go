// Package conta defines the persistence contract for contas convênio.
package conta

import (
	"context"

	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// Repository is the data access contract for contas convênio. Reads come
// joined with the remessa and agência display fields.
type Repository interface {
	Create(ctx context.Context, create *dto.ContaCreate) error
	Update(ctx context.Context, id uint, update *dto.ContaUpdate) error
	Get(ctx context.Context, id uint) (*dto.ContaRead, error)

	// List pages contas ordered by dt_abertura descending; Busca matches
	// num_conta.
	List(ctx context.Context, p list.Params) (*list.Page[dto.ContaRead], error)

	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	// CountByAgencia counts contas referencing an agência, for the
	// agência delete guard.
	CountByAgencia(ctx context.Context, idAgencia uint) (int64, error)

	// CountByRemessa counts contas referencing a remessa, for the remessa
	// delete guard.
	CountByRemessa(ctx context.Context, idRemessa uint) (int64, error)
}
