package repository

import (
	"context"

	"github.com/wbsantos/abertura-contas/pkg/repository/agencia"
	"github.com/wbsantos/abertura-contas/pkg/repository/banco"
	"github.com/wbsantos/abertura-contas/pkg/repository/concedente"
	"github.com/wbsantos/abertura-contas/pkg/repository/conta"
	"github.com/wbsantos/abertura-contas/pkg/repository/remessa"
	"github.com/wbsantos/abertura-contas/pkg/repository/usuario"
)

// UnitOfWork groups repository access under one transaction boundary.
// Repositories obtained inside Do share the transaction's session, so a
// multi-statement operation (insert conta + flip remessa situação) either
// commits whole or rolls back whole. Outside Do the accessors run on the
// base session, which is what single-statement reads want.
type UnitOfWork interface {
	// Do executes fn within a transaction. fn receives a UnitOfWork whose
	// repositories are bound to that transaction; any error rolls it back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Usuarios() usuario.Repository
	Bancos() banco.Repository
	Agencias() agencia.Repository
	Concedentes() concedente.Repository
	Remessas() remessa.Repository
	Contas() conta.Repository
}
