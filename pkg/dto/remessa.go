package dto

import (
	"time"

	"github.com/wbsantos/abertura-contas/pkg/domain"
)

// RemessaCreate is the payload to insert a new remessa. NumRemessa and
// IDUsuario are filled by the service, not by the form.
type RemessaCreate struct {
	NumProcesso    string
	NomeProponente string
	CpfCnpj        string
	NumConvenio    string
	Situacao       domain.Situacao
	DtRemessa      time.Time
	NumRemessa     int
	IDConcedente   uint
	IDUsuario      uint
	IDBanco        *uint
}

// RemessaUpdate updates an existing remessa. NumRemessa is deliberately
// absent: the sequential number is assigned once and never edited.
type RemessaUpdate struct {
	NumProcesso    *string
	NomeProponente *string
	CpfCnpj        *string
	NumConvenio    *string
	Situacao       *domain.Situacao
	IDConcedente   *uint
	IDBanco        *uint
	// LimparBanco writes NULL to id_banco, detaching the remessa from its
	// banco; when set, IDBanco is ignored.
	LimparBanco bool
}

// RemessaRead is the read projection of a remessa joined with the display
// names of its concedente, usuário and banco.
type RemessaRead struct {
	ID             uint
	NumProcesso    string
	NomeProponente string
	CpfCnpj        string
	NumConvenio    string
	Situacao       domain.Situacao
	DtRemessa      time.Time
	NumRemessa     int
	IDConcedente   uint
	IDUsuario      uint
	IDBanco        *uint
	ConcedenteNome string
	UsuarioNome    string
	BancoNome      string
}
