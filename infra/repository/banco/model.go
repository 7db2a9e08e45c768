package banco

// Banco is the GORM model of the banco table.
type Banco struct {
	ID   uint   `gorm:"column:id_banco;primaryKey"`
	Nome string `gorm:"size:100;not null"`
}

// TableName keeps the original singular table name.
func (Banco) TableName() string { return "banco" }
