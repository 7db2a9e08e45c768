package agencia

import "github.com/wbsantos/abertura-contas/infra/repository/banco"

// Agencia is the GORM model of the agencia table. The association field
// exists so AutoMigrate emits the foreign key; it is never loaded or
// saved by the repository.
type Agencia struct {
	ID          uint   `gorm:"column:id_agencia;primaryKey"`
	NomeAgencia string `gorm:"size:100;not null"`
	NumAgencia  int    `gorm:"not null"`
	DvAgencia   string `gorm:"size:1;not null"`
	Logadouro   string `gorm:"size:300;not null"`
	Cidade      string `gorm:"size:100;not null"`
	UF          string `gorm:"column:uf;size:2"`
	IDBanco     uint   `gorm:"not null;index"`

	Banco *banco.Banco `gorm:"foreignKey:IDBanco;references:ID"`
}

// TableName keeps the original singular table name.
func (Agencia) TableName() string { return "agencia" }
