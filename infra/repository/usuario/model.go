package usuario

// Usuario is the GORM model of the usuario table. Senha stores the bcrypt
// hash, never the plain password.
type Usuario struct {
	ID          uint   `gorm:"column:id_usuario;primaryKey"`
	Nome        string `gorm:"size:100;not null"`
	Matricula   string `gorm:"size:20;uniqueIndex;not null"`
	Email       string `gorm:"size:200;uniqueIndex;not null"`
	Instituicao string `gorm:"size:100"`
	Perfil      string `gorm:"size:20;not null;default:MONITOR"`
	Login       string `gorm:"size:50;uniqueIndex;not null"`
	Senha       string `gorm:"size:100;not null"`
	Status      string `gorm:"size:20;not null;default:ATIVO"`
}

// TableName keeps the original singular table name.
func (Usuario) TableName() string { return "usuario" }
