package conta

import (
	"time"

	"github.com/wbsantos/abertura-contas/infra/repository/agencia"
	"github.com/wbsantos/abertura-contas/infra/repository/remessa"
)

// ContaConvenio is the GORM model of the conta_convenio table. The
// association fields exist so AutoMigrate emits the foreign keys; they
// are never loaded or saved by the repository.
type ContaConvenio struct {
	ID         uint      `gorm:"column:id_conta_convenio;primaryKey"`
	NumConta   string    `gorm:"size:20;not null"`
	DvConta    string    `gorm:"size:1;not null"`
	DtAbertura time.Time `gorm:"type:date;not null"`
	IDRemessa  uint      `gorm:"not null;index"`
	IDAgencia  uint      `gorm:"not null;index"`

	Remessa *remessa.Remessa `gorm:"foreignKey:IDRemessa;references:ID"`
	Agencia *agencia.Agencia `gorm:"foreignKey:IDAgencia;references:ID"`
}

// TableName keeps the original table name.
func (ContaConvenio) TableName() string { return "conta_convenio" }
