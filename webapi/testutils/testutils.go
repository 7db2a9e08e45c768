// Package testutils assembles a Fiber application over the in-memory
// fixtures store so handler tests can exercise real routes, sessions and
// templates without Postgres.
package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/wbsantos/abertura-contas/internal/fixtures"
	"github.com/wbsantos/abertura-contas/pkg/app"
	"github.com/wbsantos/abertura-contas/pkg/config"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/utils"
	"github.com/wbsantos/abertura-contas/webapi"
)

// CookieName is the session cookie used by the test application.
const CookieName = "abertura_contas_sessao"

func testConfig() *config.App {
	return &config.App{
		Env:     "test",
		Session: &config.Session{CookieName: CookieName, Expiry: time.Hour},
		Paging:  &config.Paging{PageSize: 10},
	}
}

func templatesDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "templates")
}

// NewTestApp builds the full route tree over an empty fixtures store.
func NewTestApp(t *testing.T) (*fiber.App, *fixtures.Store) {
	t.Helper()
	store := fixtures.NewStore()
	deps := &app.Deps{
		Uow:    fixtures.NewUoW(store),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	a := app.New(deps, testConfig())
	return webapi.SetupApp(a, templatesDir()), store
}

// SeedUsuario inserts a usuário with a real bcrypt hash and returns its id.
func SeedUsuario(t *testing.T, store *fixtures.Store, login, senha string, perfil domain.Perfil) uint {
	t.Helper()
	hash, err := utils.HashPassword(senha)
	require.NoError(t, err)
	id := uint(len(store.Usuarios) + 1000)
	store.Usuarios[id] = dto.UsuarioRead{
		ID:        id,
		Nome:      "Usuário " + login,
		Matricula: "M-" + login,
		Email:     login + "@gov.br",
		Login:     login,
		SenhaHash: hash,
		Perfil:    perfil,
		Status:    domain.StatusAtivo,
	}
	return id
}

// Get performs a GET with an optional session cookie.
func Get(t *testing.T, a *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := a.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

// PostForm performs a URL-encoded POST with an optional session cookie.
func PostForm(t *testing.T, a *fiber.App, path string, form url.Values, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := a.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

// SessionCookie extracts the session cookie pair from a response.
func SessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

// Login authenticates through the real login route and returns the
// session cookie to send on subsequent requests.
func Login(t *testing.T, a *fiber.App, login, senha string) string {
	t.Helper()
	resp := PostForm(t, a, "/login", url.Values{
		"login": {login},
		"senha": {senha},
	}, "")
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/dashboard", resp.Header.Get("Location"))
	return SessionCookie(t, resp)
}
