package auth_test

import (
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/webapi/testutils"
)

func TestIndex_RedirectsByLoginState(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "s3nh4forte", domain.PerfilOperador)

	resp := testutils.Get(t, app, "/", "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	cookie := testutils.Login(t, app, "maria", "s3nh4forte")
	resp = testutils.Get(t, app, "/", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestLogin_BadCredentials(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "s3nh4forte", domain.PerfilOperador)

	resp := testutils.PostForm(t, app, "/login", url.Values{
		"login": {"maria"},
		"senha": {"errada"},
	}, "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginLogout_RoundTrip(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "s3nh4forte", domain.PerfilOperador)

	cookie := testutils.Login(t, app, "maria", "s3nh4forte")

	resp := testutils.Get(t, app, "/dashboard", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = testutils.Get(t, app, "/logout", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// The destroyed session no longer opens the dashboard.
	resp = testutils.Get(t, app, "/dashboard", cookie)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRegistrar(t *testing.T) {
	app, store := testutils.NewTestApp(t)

	form := url.Values{
		"nome":           {"Maria da Silva"},
		"matricula":      {"12345"},
		"email":          {"maria@gov.br"},
		"instituicao":    {"Secretaria da Fazenda"},
		"login":          {"maria"},
		"senha":          {"s3nh4forte"},
		"confirma_senha": {"s3nh4forte"},
	}
	resp := testutils.PostForm(t, app, "/registrar", form, "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	require.Len(t, store.Usuarios, 1)
	for _, u := range store.Usuarios {
		assert.Equal(t, domain.PerfilMonitor, u.Perfil, "self-registration starts as monitor")
	}

	// A second registration with the same login bounces back.
	form.Set("email", "outra@gov.br")
	form.Set("matricula", "99999")
	resp = testutils.PostForm(t, app, "/registrar", form, "")
	assert.Equal(t, "/registrar", resp.Header.Get("Location"))
	assert.Len(t, store.Usuarios, 1)
}

func TestRegistrar_PasswordsMustMatch(t *testing.T) {
	app, store := testutils.NewTestApp(t)

	resp := testutils.PostForm(t, app, "/registrar", url.Values{
		"nome":           {"Maria da Silva"},
		"matricula":      {"12345"},
		"email":          {"maria@gov.br"},
		"instituicao":    {"SEF"},
		"login":          {"maria"},
		"senha":          {"uma"},
		"confirma_senha": {"outra"},
	}, "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/registrar", resp.Header.Get("Location"))
	assert.Empty(t, store.Usuarios)
}

func TestEsqueciSenha_FullReset(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "antiga", domain.PerfilOperador)

	// Stage one: the known e-mail re-renders with the reset fields.
	resp := testutils.PostForm(t, app, "/esqueci-senha", url.Values{
		"email": {"maria@gov.br"},
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Stage two stores the new password.
	resp = testutils.PostForm(t, app, "/esqueci-senha", url.Values{
		"stage":       {"reset"},
		"email":       {"maria@gov.br"},
		"nova_senha":  {"nova123"},
		"confirmacao": {"nova123"},
	}, "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	testutils.Login(t, app, "maria", "nova123")
}

func TestEsqueciSenha_UnknownEmail(t *testing.T) {
	app, _ := testutils.NewTestApp(t)

	resp := testutils.PostForm(t, app, "/esqueci-senha", url.Values{
		"email": {"ninguem@gov.br"},
	}, "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/esqueci-senha", resp.Header.Get("Location"))
}
