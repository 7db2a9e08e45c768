package infra

import (
	"github.com/wbsantos/abertura-contas/infra/repository/agencia"
	"github.com/wbsantos/abertura-contas/infra/repository/banco"
	"github.com/wbsantos/abertura-contas/infra/repository/concedente"
	"github.com/wbsantos/abertura-contas/infra/repository/conta"
	"github.com/wbsantos/abertura-contas/infra/repository/remessa"
	"github.com/wbsantos/abertura-contas/infra/repository/usuario"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the six application tables. Parent tables
// go first so the foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&usuario.Usuario{},
		&banco.Banco{},
		&concedente.Concedente{},
		&agencia.Agencia{},
		&remessa.Remessa{},
		&conta.ContaConvenio{},
	)
}
