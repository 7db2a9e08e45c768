package remessa_test

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
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	"github.com/wbsantos/abertura-contas/pkg/service/remessa"
)

func novoLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func semearCadastro(store *fixtures.Store) {
	store.Concedentes[1] = dto.ConcedenteRead{ID: 1, CodigoSecretaria: "SEF-01", Sigla: "SEF", Nome: "Secretaria da Fazenda"}
	store.Usuarios[2] = dto.UsuarioRead{ID: 2, Nome: "Maria da Silva", Login: "maria"}
	store.Bancos[3] = dto.BancoRead{ID: 3, Nome: "Banco do Brasil"}
}

func criarInput(numProcesso string) remessa.CriarInput {
	return remessa.CriarInput{
		NumProcesso:    numProcesso,
		NomeProponente: "Prefeitura de Petrolina",
		CpfCnpj:        "10.358.190/0001-77",
		NumConvenio:    "CV-2026-0012",
		IDConcedente:   1,
	}
}

func TestCriar_SequentialNumbers(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())

	require.NoError(t, s.Criar(context.Background(), criarInput("2026/001"), 2))
	require.NoError(t, s.Criar(context.Background(), criarInput("2026/002"), 2))
	require.NoError(t, s.Criar(context.Background(), criarInput("2026/003"), 2))

	numeros := map[int]bool{}
	for _, r := range store.Remessas {
		numeros[r.NumRemessa] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, numeros,
		"numbers must be contiguous from 1")
}

func TestCriar_NumberFillsAfterDelete(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())

	require.NoError(t, s.Criar(context.Background(), criarInput("2026/001"), 2))
	require.NoError(t, s.Criar(context.Background(), criarInput("2026/002"), 2))

	var ultimo uint
	for id, r := range store.Remessas {
		if r.NumRemessa == 2 {
			ultimo = id
		}
	}
	require.NoError(t, s.Excluir(context.Background(), ultimo))

	// max+1 again: the freed number is reused.
	require.NoError(t, s.Criar(context.Background(), criarInput("2026/003"), 2))
	for _, r := range store.Remessas {
		if r.NumProcesso == "2026/003" {
			assert.Equal(t, 2, r.NumRemessa)
		}
	}
}

func TestCriar_DefaultSituacaoAndOwner(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())

	require.NoError(t, s.Criar(context.Background(), criarInput("2026/001"), 2))

	for _, r := range store.Remessas {
		assert.Equal(t, domain.SituacaoEmPreparacao, r.Situacao)
		assert.Equal(t, uint(2), r.IDUsuario)
		assert.WithinDuration(t, time.Now(), r.DtRemessa, time.Minute)
	}
}

func TestCriar_ConcedenteInexistente(t *testing.T) {
	store := fixtures.NewStore()
	s := remessa.New(fixtures.NewUoW(store), novoLogger())

	in := criarInput("2026/001")
	in.IDConcedente = 999
	assert.ErrorIs(t, s.Criar(context.Background(), in, 2), domain.ErrNaoEncontrado)
	assert.Empty(t, store.Remessas, "a dangling reference must not insert")
}

func TestCriar_BancoInexistente(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())

	in := criarInput("2026/001")
	fantasma := uint(999)
	in.IDBanco = &fantasma
	assert.ErrorIs(t, s.Criar(context.Background(), in, 2), domain.ErrNaoEncontrado)
	assert.Empty(t, store.Remessas)
}

func TestAtualizar_ReferenciasInexistentes(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), criarInput("2026/001"), 2))

	var id uint
	for k := range store.Remessas {
		id = k
	}

	fantasma := uint(999)
	err := s.Atualizar(context.Background(), id, dto.RemessaUpdate{IDConcedente: &fantasma})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
	assert.Equal(t, uint(1), store.Remessas[id].IDConcedente, "the row keeps its concedente")

	err = s.Atualizar(context.Background(), id, dto.RemessaUpdate{IDBanco: &fantasma})
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
	assert.Nil(t, store.Remessas[id].IDBanco)
}

func TestAtualizar_LimparBanco(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())

	in := criarInput("2026/001")
	idBanco := uint(3)
	in.IDBanco = &idBanco
	require.NoError(t, s.Criar(context.Background(), in, 2))

	var id uint
	for k := range store.Remessas {
		id = k
	}
	require.NotNil(t, store.Remessas[id].IDBanco)

	require.NoError(t, s.Atualizar(context.Background(), id, dto.RemessaUpdate{LimparBanco: true}))
	assert.Nil(t, store.Remessas[id].IDBanco, "clearing writes NULL instead of keeping the banco")
}

func TestAtualizar_NumRemessaImmutable(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), criarInput("2026/001"), 2))

	var id uint
	for k := range store.Remessas {
		id = k
	}

	nome := "Prefeitura de Garanhuns"
	situacao := domain.SituacaoEnviado
	require.NoError(t, s.Atualizar(context.Background(), id, dto.RemessaUpdate{
		NomeProponente: &nome,
		Situacao:       &situacao,
	}))

	depois := store.Remessas[id]
	assert.Equal(t, 1, depois.NumRemessa)
	assert.Equal(t, "Prefeitura de Garanhuns", depois.NomeProponente)
	assert.Equal(t, domain.SituacaoEnviado, depois.Situacao)
}

func TestAtualizar_AnySituacaoTransition(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), criarInput("2026/001"), 2))

	var id uint
	for k := range store.Remessas {
		id = k
	}

	// No transition table: CONTA_ABERTA back to EM_PREPARACAO is allowed.
	aberta := domain.SituacaoContaAberta
	require.NoError(t, s.Atualizar(context.Background(), id, dto.RemessaUpdate{Situacao: &aberta}))
	preparacao := domain.SituacaoEmPreparacao
	require.NoError(t, s.Atualizar(context.Background(), id, dto.RemessaUpdate{Situacao: &preparacao}))
	assert.Equal(t, domain.SituacaoEmPreparacao, store.Remessas[id].Situacao)
}

func TestExcluir_BlockedByContas(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())
	require.NoError(t, s.Criar(context.Background(), criarInput("2026/001"), 2))

	var id uint
	for k := range store.Remessas {
		id = k
	}
	store.Contas[50] = dto.ContaRead{ID: 50, NumConta: "1234-5", IDRemessa: id}

	assert.ErrorIs(t, s.Excluir(context.Background(), id), domain.ErrPossuiDependentes)

	delete(store.Contas, 50)
	require.NoError(t, s.Excluir(context.Background(), id))
	assert.Empty(t, store.Remessas)
}

func TestList_SituacaoFilter(t *testing.T) {
	store := fixtures.NewStore()
	semearCadastro(store)
	s := remessa.New(fixtures.NewUoW(store), novoLogger())

	require.NoError(t, s.Criar(context.Background(), criarInput("2026/001"), 2))
	enviado := criarInput("2026/002")
	enviado.Situacao = domain.SituacaoEnviado
	require.NoError(t, s.Criar(context.Background(), enviado, 2))

	page, err := s.List(context.Background(), list.Params{
		Filtro: string(domain.SituacaoEnviado), Page: 1, PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "2026/002", page.Items[0].NumProcesso)
	assert.Equal(t, "Secretaria da Fazenda", page.Items[0].ConcedenteNome)
	assert.Equal(t, "Maria da Silva", page.Items[0].UsuarioNome)
}

func TestGet_Missing(t *testing.T) {
	store := fixtures.NewStore()
	s := remessa.New(fixtures.NewUoW(store), novoLogger())

	_, err := s.Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNaoEncontrado)
}
