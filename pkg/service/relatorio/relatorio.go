// Package relatorio renders the remessa detail sheet as a single-page PDF.
package relatorio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/go-pdf/fpdf"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
)

// Service produces the remessa PDF export.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a relatório Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

const (
	margemX       = 72.0 // one inch, in points
	tituloY       = 72.0
	primeiraLinha = 108.0
	alturaLinha   = 21.6
	colunaValor   = margemX + 144.0
)

// GerarRemessaPDF renders the remessa identified by id as an inline PDF
// and returns the document bytes plus the download file name
// (remessa_<num_remessa>.pdf). A missing remessa returns
// domain.ErrNaoEncontrado and no document.
func (s *Service) GerarRemessaPDF(ctx context.Context, id uint) ([]byte, string, error) {
	r, err := s.uow.Remessas().Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if r == nil {
		return nil, "", domain.ErrNaoEncontrado
	}

	doc, err := render(r)
	if err != nil {
		s.logger.Error("PDF render failed", "id_remessa", id, "error", err)
		return nil, "", err
	}
	return doc, fmt.Sprintf("remessa_%d.pdf", r.NumRemessa), nil
}

func render(r *dto.RemessaRead) ([]byte, error) {
	pdf := fpdf.New("P", "pt", "Letter", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(margemX, tituloY, tr(fmt.Sprintf("Detalhes da Remessa Nº: %d", r.NumRemessa)))

	y := primeiraLinha
	linha := func(rotulo, valor string) {
		if valor == "" {
			valor = "N/A"
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(margemX, y, tr(rotulo+":"))
		pdf.SetFont("Helvetica", "", 12)
		pdf.Text(colunaValor, y, tr(valor))
		y += alturaLinha
	}

	linha("Número do Processo", r.NumProcesso)
	linha("Nome do Proponente", r.NomeProponente)
	linha("CPF/CNPJ", r.CpfCnpj)
	linha("Número do Convênio", r.NumConvenio)
	linha("Situação", r.Situacao.Label())
	linha("Data da Remessa", r.DtRemessa.Format("02/01/2006"))
	linha("Concedente", r.ConcedenteNome)
	linha("Usuário Responsável", r.UsuarioNome)
	linha("Banco", r.BancoNome)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
