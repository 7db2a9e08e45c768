package webapi_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/webapi/testutils"
)

func TestProtectedRoutesRequireLogin(t *testing.T) {
	app, _ := testutils.NewTestApp(t)

	paths := []string{
		"/dashboard",
		"/usuarios/",
		"/bancos/",
		"/agencias/",
		"/concedentes/",
		"/remessas/",
		"/contas-convenio/",
	}
	for _, path := range paths {
		resp := testutils.Get(t, app, path, "")
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}
}

func TestUsuarioRoutesRequireAdmin(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "operadora", "senha", domain.PerfilOperador)
	testutils.SeedUsuario(t, store, "chefe", "senha", domain.PerfilAdmin)

	cookie := testutils.Login(t, app, "operadora", "senha")
	resp := testutils.Get(t, app, "/usuarios/", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	cookie = testutils.Login(t, app, "chefe", "senha")
	resp = testutils.Get(t, app, "/usuarios/", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPublicRoutesStayOpen(t *testing.T) {
	app, _ := testutils.NewTestApp(t)

	for _, path := range []string{"/login", "/registrar", "/esqueci-senha"} {
		resp := testutils.Get(t, app, path, "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestUnknownRoute(t *testing.T) {
	app, _ := testutils.NewTestApp(t)

	resp := testutils.Get(t, app, "/nao-existe", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
