package remessa_test

import (
	"io"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbsantos/abertura-contas/internal/fixtures"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/webapi/testutils"
)

func semear(store *fixtures.Store) {
	store.Concedentes[1] = dto.ConcedenteRead{ID: 1, CodigoSecretaria: "SEF-01", Sigla: "SEF", Nome: "Secretaria da Fazenda"}
	store.Bancos[2] = dto.BancoRead{ID: 2, Nome: "Banco do Brasil"}
}

func TestCriar(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	semear(store)
	idUsuario := testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.PostForm(t, app, "/remessas/criar", url.Values{
		"num_processo":    {"2026/001"},
		"nome_proponente": {"Prefeitura de Petrolina"},
		"cpf_cnpj":        {"10.358.190/0001-77"},
		"num_convenio":    {"CV-2026-0012"},
		"id_concedente":   {"1"},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/remessas", resp.Header.Get("Location"))

	require.Len(t, store.Remessas, 1)
	for _, r := range store.Remessas {
		assert.Equal(t, 1, r.NumRemessa)
		assert.Equal(t, domain.SituacaoEmPreparacao, r.Situacao)
		assert.Equal(t, idUsuario, r.IDUsuario, "the owner comes from the session")
	}
}

func TestCriar_ConcedenteInexistente(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.PostForm(t, app, "/remessas/criar", url.Values{
		"num_processo":    {"2026/001"},
		"nome_proponente": {"Prefeitura de Petrolina"},
		"cpf_cnpj":        {"10.358.190/0001-77"},
		"num_convenio":    {"CV-2026-0012"},
		"id_concedente":   {"999"},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/remessas/criar", resp.Header.Get("Location"))
	assert.Empty(t, store.Remessas)
}

func TestEditar_LimparBanco(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	semear(store)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	idBanco := uint(2)
	store.Remessas[10] = dto.RemessaRead{
		ID: 10, NumProcesso: "2026/001", NomeProponente: "Petrolina",
		CpfCnpj: "10.358.190/0001-77", NumConvenio: "CV-2026-0012",
		Situacao: domain.SituacaoEnviado, NumRemessa: 1, IDConcedente: 1, IDBanco: &idBanco,
	}
	cookie := testutils.Login(t, app, "maria", "senha")

	// id_banco posted empty: detach the banco.
	resp := testutils.PostForm(t, app, "/remessas/editar/10", url.Values{
		"num_processo":    {"2026/001"},
		"nome_proponente": {"Petrolina"},
		"cpf_cnpj":        {"10.358.190/0001-77"},
		"num_convenio":    {"CV-2026-0012"},
		"id_concedente":   {"1"},
		"id_banco":        {"0"},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/remessas", resp.Header.Get("Location"))
	assert.Nil(t, store.Remessas[10].IDBanco)
}

func TestListar_FiltroSituacao(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	semear(store)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	store.Remessas[10] = dto.RemessaRead{ID: 10, NumProcesso: "2026/001", NomeProponente: "Petrolina", Situacao: domain.SituacaoEnviado, NumRemessa: 1, IDConcedente: 1}
	store.Remessas[11] = dto.RemessaRead{ID: 11, NumProcesso: "2026/002", NomeProponente: "Olinda", Situacao: domain.SituacaoAprovado, NumRemessa: 2, IDConcedente: 1}
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.Get(t, app, "/remessas/?situacao=ENVIADO", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "2026/001")
	assert.NotContains(t, string(body), "2026/002")
}

func TestGerarPDF(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	semear(store)
	idUsuario := testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	store.Remessas[10] = dto.RemessaRead{
		ID: 10, NumProcesso: "2026/001", NomeProponente: "Prefeitura de Petrolina",
		Situacao: domain.SituacaoEnviado, NumRemessa: 7, IDConcedente: 1, IDUsuario: idUsuario,
	}
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.Get(t, app, "/remessas/editar/10/gerar-pdf", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "inline; filename=remessa_7.pdf", resp.Header.Get(fiber.HeaderContentDisposition))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, len(body) > 4 && string(body[:4]) == "%PDF", "payload must be a PDF document")
}

func TestGerarPDF_MissingRemessa(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.Get(t, app, "/remessas/editar/99/gerar-pdf", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/remessas", resp.Header.Get("Location"))
}

func TestExcluir_BlockedByConta(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	semear(store)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	store.Remessas[10] = dto.RemessaRead{ID: 10, NumProcesso: "2026/001", Situacao: domain.SituacaoContaAberta, NumRemessa: 1, IDConcedente: 1}
	store.Contas[20] = dto.ContaRead{ID: 20, NumConta: "1234-5", IDRemessa: 10}
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.PostForm(t, app, "/remessas/excluir/10", url.Values{}, cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Len(t, store.Remessas, 1, "the guarded remessa survives")
}
