package relatorio_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbsantos/abertura-contas/internal/fixtures"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/service/relatorio"
)

func novoLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGerarRemessaPDF(t *testing.T) {
	store := fixtures.NewStore()
	store.Concedentes[1] = dto.ConcedenteRead{ID: 1, Sigla: "SEF", Nome: "Secretaria da Fazenda"}
	store.Usuarios[2] = dto.UsuarioRead{ID: 2, Nome: "Maria da Silva"}
	idBanco := uint(3)
	store.Bancos[3] = dto.BancoRead{ID: 3, Nome: "Banco do Brasil"}
	store.Remessas[4] = dto.RemessaRead{
		ID: 4, NumProcesso: "2026/001", NomeProponente: "Prefeitura de Petrolina",
		CpfCnpj: "10.358.190/0001-77", NumConvenio: "CV-2026-0012",
		Situacao: domain.SituacaoEnviado, DtRemessa: time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		NumRemessa: 12, IDConcedente: 1, IDUsuario: 2, IDBanco: &idBanco,
	}
	s := relatorio.New(fixtures.NewUoW(store), novoLogger())

	doc, nome, err := s.GerarRemessaPDF(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "remessa_12.pdf", nome)
	require.True(t, len(doc) > 4)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestGerarRemessaPDF_Missing(t *testing.T) {
	store := fixtures.NewStore()
	s := relatorio.New(fixtures.NewUoW(store), novoLogger())

	doc, nome, err := s.GerarRemessaPDF(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
	assert.Nil(t, doc)
	assert.Empty(t, nome)
}
