package domain

import "fmt"

// Situacao is the workflow state of a remessa.
//
// The edit screen accepts any state change; the only automatic transition
// is SituacaoContaAberta, applied when a conta convênio is linked to the
// remessa.
type Situacao string

const (
	SituacaoEmPreparacao      Situacao = "EM_PREPARACAO"
	SituacaoEnviado           Situacao = "ENVIADO"
	SituacaoAguardandoRetorno Situacao = "AGUARDANDO_RETORNO"
	SituacaoAprovado          Situacao = "APROVADO"
	SituacaoContaAberta       Situacao = "CONTA_ABERTA"
	SituacaoErro              Situacao = "ERRO"
)

// Situacoes lists all workflow states in presentation order.
func Situacoes() []Situacao {
	return []Situacao{
		SituacaoEmPreparacao,
		SituacaoEnviado,
		SituacaoAguardandoRetorno,
		SituacaoAprovado,
		SituacaoContaAberta,
		SituacaoErro,
	}
}

// ParseSituacao validates a workflow state code coming from a form field.
func ParseSituacao(s string) (Situacao, error) {
	switch Situacao(s) {
	case SituacaoEmPreparacao, SituacaoEnviado, SituacaoAguardandoRetorno,
		SituacaoAprovado, SituacaoContaAberta, SituacaoErro:
		return Situacao(s), nil
	}
	return "", fmt.Errorf("%w: situação %q", ErrValorInvalido, s)
}

// Label returns the display name of the state.
func (s Situacao) Label() string {
	switch s {
	case SituacaoEmPreparacao:
		return "Em preparação"
	case SituacaoEnviado:
		return "Enviado"
	case SituacaoAguardandoRetorno:
		return "Aguardando retorno"
	case SituacaoAprovado:
		return "Aprovado"
	case SituacaoContaAberta:
		return "Conta aberta"
	case SituacaoErro:
		return "Erro"
	}
	return string(s)
}
