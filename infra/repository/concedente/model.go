package concedente

// Concedente is the GORM model of the concedente table.
type Concedente struct {
	ID               uint   `gorm:"column:id_concedente;primaryKey"`
	CodigoSecretaria string `gorm:"size:20;uniqueIndex;not null"`
	Sigla            string `gorm:"size:20;not null"`
	Nome             string `gorm:"size:100;not null"`
}

// TableName keeps the original singular table name.
func (Concedente) TableName() string { return "concedente" }
