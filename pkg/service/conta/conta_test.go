package conta_test

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
	"github.com/wbsantos/abertura-contas/pkg/service/conta"
)

func novoLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func semear(store *fixtures.Store) {
	store.Bancos[1] = dto.BancoRead{ID: 1, Nome: "Caixa Econômica Federal"}
	store.Agencias[2] = dto.AgenciaRead{
		ID: 2, NomeAgencia: "Agência Centro", NumAgencia: 104, DvAgencia: "7",
		Cidade: "Recife", UF: "PE", IDBanco: 1,
	}
	store.Remessas[3] = dto.RemessaRead{
		ID: 3, NumProcesso: "2026/010", NomeProponente: "Prefeitura de Olinda",
		Situacao: domain.SituacaoAprovado, NumRemessa: 1, IDConcedente: 1, IDUsuario: 1,
	}
}

func novaConta() dto.ContaCreate {
	return dto.ContaCreate{
		NumConta:   "45210-3",
		DvConta:    "3",
		DtAbertura: time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
		IDRemessa:  3,
		IDAgencia:  2,
	}
}

func TestCriar_FlipsRemessaToContaAberta(t *testing.T) {
	store := fixtures.NewStore()
	semear(store)
	s := conta.New(fixtures.NewUoW(store), novoLogger())

	require.NoError(t, s.Criar(context.Background(), novaConta()))

	assert.Len(t, store.Contas, 1)
	assert.Equal(t, domain.SituacaoContaAberta, store.Remessas[3].Situacao)
}

func TestCriar_FlipsFromAnySituacao(t *testing.T) {
	store := fixtures.NewStore()
	semear(store)
	r := store.Remessas[3]
	r.Situacao = domain.SituacaoEmPreparacao
	store.Remessas[3] = r
	s := conta.New(fixtures.NewUoW(store), novoLogger())

	require.NoError(t, s.Criar(context.Background(), novaConta()))
	assert.Equal(t, domain.SituacaoContaAberta, store.Remessas[3].Situacao)
}

func TestCriar_MissingRemessa(t *testing.T) {
	store := fixtures.NewStore()
	semear(store)
	s := conta.New(fixtures.NewUoW(store), novoLogger())

	in := novaConta()
	in.IDRemessa = 99
	assert.ErrorIs(t, s.Criar(context.Background(), in), domain.ErrNaoEncontrado)
	assert.Empty(t, store.Contas)
}

func TestCriar_MissingAgencia(t *testing.T) {
	store := fixtures.NewStore()
	semear(store)
	s := conta.New(fixtures.NewUoW(store), novoLogger())

	in := novaConta()
	in.IDAgencia = 99
	assert.ErrorIs(t, s.Criar(context.Background(), in), domain.ErrNaoEncontrado)
	assert.Empty(t, store.Contas)
	assert.Equal(t, domain.SituacaoAprovado, store.Remessas[3].Situacao,
		"a failed creation must not flip the remessa")
}

func TestAtualizar_DoesNotTouchRemessa(t *testing.T) {
	store := fixtures.NewStore()
	semear(store)
	s := conta.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), novaConta()))

	// Reset the situação to prove editing leaves it alone.
	r := store.Remessas[3]
	r.Situacao = domain.SituacaoErro
	store.Remessas[3] = r

	var id uint
	for k := range store.Contas {
		id = k
	}
	num := "99999-9"
	require.NoError(t, s.Atualizar(context.Background(), id, dto.ContaUpdate{NumConta: &num}))

	assert.Equal(t, "99999-9", store.Contas[id].NumConta)
	assert.Equal(t, domain.SituacaoErro, store.Remessas[3].Situacao)
}

func TestAtualizar_ReferenciasInexistentes(t *testing.T) {
	store := fixtures.NewStore()
	semear(store)
	s := conta.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), novaConta()))

	var id uint
	for k := range store.Contas {
		id = k
	}

	fantasma := uint(99)
	err := s.Atualizar(context.Background(), id, dto.ContaUpdate{IDRemessa: &fantasma})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
	assert.Equal(t, uint(3), store.Contas[id].IDRemessa, "the row keeps its remessa")

	err = s.Atualizar(context.Background(), id, dto.ContaUpdate{IDAgencia: &fantasma})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
	assert.Equal(t, uint(2), store.Contas[id].IDAgencia)
}

func TestExcluir(t *testing.T) {
	store := fixtures.NewStore()
	semear(store)
	s := conta.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), novaConta()))

	var id uint
	for k := range store.Contas {
		id = k
	}
	require.NoError(t, s.Excluir(context.Background(), id))
	assert.Empty(t, store.Contas)

	assert.ErrorIs(t, s.Excluir(context.Background(), id), domain.ErrNaoEncontrado)
}

func TestGet_JoinsDisplayNames(t *testing.T) {
	store := fixtures.NewStore()
	semear(store)
	s := conta.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), novaConta()))

	var id uint
	for k := range store.Contas {
		id = k
	}
	c, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2026/010", c.NumProcesso)
	assert.Equal(t, "Prefeitura de Olinda", c.NomeProponente)
	assert.Equal(t, "Agência Centro", c.NomeAgencia)
	assert.Equal(t, "Caixa Econômica Federal", c.BancoNome)
}
