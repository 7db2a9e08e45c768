package concedente_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbsantos/abertura-contas/internal/fixtures"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/service/concedente"
)

func novoLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCriar_DuplicateCodigoSecretaria(t *testing.T) {
	store := fixtures.NewStore()
	s := concedente.New(fixtures.NewUoW(store), novoLogger())

	require.NoError(t, s.Criar(context.Background(), dto.ConcedenteCreate{
		CodigoSecretaria: "SEF-01", Sigla: "SEF", Nome: "Secretaria da Fazenda",
	}))
	err := s.Criar(context.Background(), dto.ConcedenteCreate{
		CodigoSecretaria: "SEF-01", Sigla: "SEFAZ", Nome: "Outra Secretaria",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
	assert.Len(t, store.Concedentes, 1)
}

func TestExcluir_BlockedByRemessas(t *testing.T) {
	store := fixtures.NewStore()
	s := concedente.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), dto.ConcedenteCreate{
		CodigoSecretaria: "SEF-01", Sigla: "SEF", Nome: "Secretaria da Fazenda",
	}))

	var id uint
	for k := range store.Concedentes {
		id = k
	}
	store.Remessas[20] = dto.RemessaRead{ID: 20, NumProcesso: "2026/001", IDConcedente: id}

	assert.ErrorIs(t, s.Excluir(context.Background(), id), domain.ErrPossuiDependentes)

	delete(store.Remessas, 20)
	require.NoError(t, s.Excluir(context.Background(), id))
	assert.Empty(t, store.Concedentes)
}
