package dto

// BancoCreate is the payload to insert a new banco.
type BancoCreate struct {
	Nome string
}

// BancoUpdate updates an existing banco.
type BancoUpdate struct {
	Nome *string
}

// BancoRead is the read projection of a banco.
type BancoRead struct {
	ID   uint
	Nome string
}

// AgenciaCreate is the payload to insert a new agência.
type AgenciaCreate struct {
	NomeAgencia string
	NumAgencia  int
	DvAgencia   string
	Logadouro   string
	Cidade      string
	UF          string
	IDBanco     uint
}

// AgenciaUpdate updates an existing agência. Nil fields are left untouched.
type AgenciaUpdate struct {
	NomeAgencia *string
	NumAgencia  *int
	DvAgencia   *string
	Logadouro   *string
	Cidade      *string
	UF          *string
	IDBanco     *uint
}

// AgenciaRead is the read projection of an agência joined with its banco.
type AgenciaRead struct {
	ID          uint
	NomeAgencia string
	NumAgencia  int
	DvAgencia   string
	Logadouro   string
	Cidade      string
	UF          string
	IDBanco     uint
	BancoNome   string
}

// ConcedenteCreate is the payload to insert a new concedente.
type ConcedenteCreate struct {
	CodigoSecretaria string
	Sigla            string
	Nome             string
}

// ConcedenteUpdate updates an existing concedente.
type ConcedenteUpdate struct {
	CodigoSecretaria *string
	Sigla            *string
	Nome             *string
}

// ConcedenteRead is the read projection of a concedente.
type ConcedenteRead struct {
	ID               uint
	CodigoSecretaria string
	Sigla            string
	Nome             string
}
