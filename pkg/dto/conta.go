package dto

import "time"

// ContaCreate is the payload to insert a new conta convênio.
type ContaCreate struct {
	NumConta   string
	DvConta    string
	DtAbertura time.Time
	IDRemessa  uint
	IDAgencia  uint
}

// ContaUpdate updates an existing conta convênio. Nil fields are left
// untouched.
type ContaUpdate struct {
	NumConta   *string
	DvConta    *string
	DtAbertura *time.Time
	IDRemessa  *uint
	IDAgencia  *uint
}

// ContaRead is the read projection of a conta convênio joined with its
// remessa and agência display fields.
type ContaRead struct {
	ID             uint
	NumConta       string
	DvConta        string
	DtAbertura     time.Time
	IDRemessa      uint
	IDAgencia      uint
	NumProcesso    string
	NomeProponente string
	NomeAgencia    string
	BancoNome      string
}
