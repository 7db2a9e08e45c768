package remessa

import (
	"time"

	"github.com/wbsantos/abertura-contas/infra/repository/banco"
	"github.com/wbsantos/abertura-contas/infra/repository/concedente"
	"github.com/wbsantos/abertura-contas/infra/repository/usuario"
)

// Remessa is the GORM model of the remessa table. IDBanco is nullable:
// the banco is only chosen once the shipment is routed. The association
// fields exist so AutoMigrate emits the foreign keys; they are never
// loaded or saved by the repository.
type Remessa struct {
	ID             uint      `gorm:"column:id_remessa;primaryKey"`
	NumProcesso    string    `gorm:"size:100;uniqueIndex;not null"`
	NomeProponente string    `gorm:"size:100;not null"`
	CpfCnpj        string    `gorm:"size:18;not null"`
	NumConvenio    string    `gorm:"size:100;not null"`
	Situacao       string    `gorm:"size:30;not null;default:EM_PREPARACAO"`
	DtRemessa      time.Time `gorm:"type:date;not null"`
	NumRemessa     int       `gorm:"not null"`
	IDConcedente   uint      `gorm:"not null;index"`
	IDUsuario      uint      `gorm:"not null;index"`
	IDBanco        *uint     `gorm:"index"`

	Concedente *concedente.Concedente `gorm:"foreignKey:IDConcedente;references:ID"`
	Usuario    *usuario.Usuario       `gorm:"foreignKey:IDUsuario;references:ID"`
	Banco      *banco.Banco           `gorm:"foreignKey:IDBanco;references:ID"`
}

// TableName keeps the original singular table name.
func (Remessa) TableName() string { return "remessa" }
