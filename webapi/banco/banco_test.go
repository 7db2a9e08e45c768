package banco_test

import (
	"io"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/webapi/testutils"
)

func TestCriarEditarExcluir(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.PostForm(t, app, "/bancos/criar", url.Values{"nome": {"Banco do Brasil"}}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/bancos", resp.Header.Get("Location"))
	require.Len(t, store.Bancos, 1)

	var id uint
	for k := range store.Bancos {
		id = k
	}

	resp = testutils.PostForm(t, app, "/bancos/editar/1", url.Values{"nome": {"Banco do Nordeste"}}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "Banco do Nordeste", store.Bancos[id].Nome)

	resp = testutils.PostForm(t, app, "/bancos/excluir/1", url.Values{}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Empty(t, store.Bancos)
}

func TestCriar_NomeObrigatorio(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.PostForm(t, app, "/bancos/criar", url.Values{"nome": {""}}, cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Empty(t, store.Bancos)
}

func TestExcluir_Blocked(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	store.Bancos[1] = dto.BancoRead{ID: 1, Nome: "Banco do Brasil"}
	store.Agencias[2] = dto.AgenciaRead{ID: 2, NomeAgencia: "Centro", IDBanco: 1}
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.PostForm(t, app, "/bancos/excluir/1", url.Values{}, cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Len(t, store.Bancos, 1)
}

func TestListar_BuscaEPaginacao(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	for i := uint(1); i <= 12; i++ {
		store.Bancos[i] = dto.BancoRead{ID: i, Nome: "Banco " + string(rune('A'+i-1))}
	}
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.Get(t, app, "/bancos/?busca=banco+a", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Banco A")
	assert.NotContains(t, string(body), "Banco B")

	// The second page holds the overflow rows.
	resp = testutils.Get(t, app, "/bancos/?pagina=2", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Banco L")
	assert.NotContains(t, string(body), "Banco A</td>")
}
