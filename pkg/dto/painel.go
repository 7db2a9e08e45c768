package dto

import "github.com/wbsantos/abertura-contas/pkg/domain"

// PainelResumo feeds the dashboard: one total per entity plus the remessa
// count per workflow state.
type PainelResumo struct {
	TotalUsuarios    int64
	TotalBancos      int64
	TotalAgencias    int64
	TotalConcedentes int64
	TotalRemessas    int64
	TotalContas      int64
	PorSituacao      map[domain.Situacao]int64
}
