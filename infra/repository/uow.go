// Package repository implements the UnitOfWork over GORM: repositories
// obtained inside Do share one transaction, repositories obtained outside
// run on the base session.
package repository

import (
	"context"

	infraagencia "github.com/wbsantos/abertura-contas/infra/repository/agencia"
	infrabanco "github.com/wbsantos/abertura-contas/infra/repository/banco"
	infraconcedente "github.com/wbsantos/abertura-contas/infra/repository/concedente"
	infraconta "github.com/wbsantos/abertura-contas/infra/repository/conta"
	infraremessa "github.com/wbsantos/abertura-contas/infra/repository/remessa"
	infrausuario "github.com/wbsantos/abertura-contas/infra/repository/usuario"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/repository/agencia"
	"github.com/wbsantos/abertura-contas/pkg/repository/banco"
	"github.com/wbsantos/abertura-contas/pkg/repository/concedente"
	"github.com/wbsantos/abertura-contas/pkg/repository/conta"
	"github.com/wbsantos/abertura-contas/pkg/repository/remessa"
	"github.com/wbsantos/abertura-contas/pkg/repository/usuario"
	"gorm.io/gorm"
)

type uow struct {
	db *gorm.DB
}

// NewUoW wraps a GORM session in a repository.UnitOfWork.
func NewUoW(db *gorm.DB) repository.UnitOfWork {
	return &uow{db: db}
}

// Do opens a transaction and hands fn a UnitOfWork bound to it. An error
// from fn rolls the transaction back; nil commits it.
func (u *uow) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&uow{db: tx})
	})
}

func (u *uow) Usuarios() usuario.Repository       { return infrausuario.New(u.db) }
func (u *uow) Bancos() banco.Repository           { return infrabanco.New(u.db) }
func (u *uow) Agencias() agencia.Repository       { return infraagencia.New(u.db) }
func (u *uow) Concedentes() concedente.Repository { return infraconcedente.New(u.db) }
func (u *uow) Remessas() remessa.Repository       { return infraremessa.New(u.db) }
func (u *uow) Contas() conta.Repository           { return infraconta.New(u.db) }
