package usuario_test

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/webapi/testutils"
)

func TestEditar_SelfOnlyForNonAdmins(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	idMaria := testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	idOutro := testutils.SeedUsuario(t, store, "joao", "senha", domain.PerfilOperador)
	cookie := testutils.Login(t, app, "maria", "senha")

	// Editing someone else is refused.
	resp := testutils.Get(t, app, fmt.Sprintf("/usuarios/editar/%d", idOutro), cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	// Editing yourself works.
	resp = testutils.Get(t, app, fmt.Sprintf("/usuarios/editar/%d", idMaria), cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestEditar_NonAdminCannotEscalate(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	id := testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.PostForm(t, app, fmt.Sprintf("/usuarios/editar/%d", id), url.Values{
		"nome":        {"Maria de Souza"},
		"email":       {"maria@gov.br"},
		"instituicao": {"SEF"},
		"perfil":      {"ADMIN"},
		"login":       {"root"},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	depois := store.Usuarios[id]
	assert.Equal(t, "Maria de Souza", depois.Nome)
	assert.Equal(t, domain.PerfilOperador, depois.Perfil, "perfil is admin-only")
	assert.Equal(t, "maria", depois.Login, "login is admin-only")
}

func TestEditar_AdminChangesPerfilAndStatus(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	id := testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilMonitor)
	testutils.SeedUsuario(t, store, "chefe", "senha", domain.PerfilAdmin)
	cookie := testutils.Login(t, app, "chefe", "senha")

	resp := testutils.PostForm(t, app, fmt.Sprintf("/usuarios/editar/%d", id), url.Values{
		"nome":        {"Maria da Silva"},
		"email":       {"maria@gov.br"},
		"instituicao": {"SEF"},
		"perfil":      {"OPERADOR"},
		"status":      {"INATIVO"},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/usuarios", resp.Header.Get("Location"))

	depois := store.Usuarios[id]
	assert.Equal(t, domain.PerfilOperador, depois.Perfil)
	assert.Equal(t, domain.StatusInativo, depois.Status)
}

func TestExcluir_SelfDeleteRefused(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	id := testutils.SeedUsuario(t, store, "chefe", "senha", domain.PerfilAdmin)
	cookie := testutils.Login(t, app, "chefe", "senha")

	resp := testutils.PostForm(t, app, fmt.Sprintf("/usuarios/excluir/%d", id), url.Values{}, cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Len(t, store.Usuarios, 1)
}

func TestCriar_AdminSetsPerfil(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "chefe", "senha", domain.PerfilAdmin)
	cookie := testutils.Login(t, app, "chefe", "senha")

	resp := testutils.PostForm(t, app, "/usuarios/criar", url.Values{
		"nome":        {"Maria da Silva"},
		"matricula":   {"12345"},
		"email":       {"maria@gov.br"},
		"instituicao": {"SEF"},
		"login":       {"maria"},
		"senha":       {"s3nh4forte"},
		"perfil":      {"OPERADOR"},
	}, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/usuarios", resp.Header.Get("Location"))

	var achou bool
	for _, u := range store.Usuarios {
		if u.Login == "maria" {
			achou = true
			assert.Equal(t, domain.PerfilOperador, u.Perfil)
		}
	}
	assert.True(t, achou)
}
