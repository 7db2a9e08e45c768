// Package webapi assembles the Fiber application: the view engine, the
// session store, the access gates and every route of the system. Handlers
// live in the sub-packages, one per area:
// - auth: login, registration and password reset
// - painel: dashboard
// - usuario, banco, agencia, concedente, remessa, conta: entity CRUD
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/wbsantos/abertura-contas/pkg/app"
	"github.com/wbsantos/abertura-contas/pkg/middleware"
	agenciaweb "github.com/wbsantos/abertura-contas/webapi/agencia"
	authweb "github.com/wbsantos/abertura-contas/webapi/auth"
	bancoweb "github.com/wbsantos/abertura-contas/webapi/banco"
	concedenteweb "github.com/wbsantos/abertura-contas/webapi/concedente"
	contaweb "github.com/wbsantos/abertura-contas/webapi/conta"
	painelweb "github.com/wbsantos/abertura-contas/webapi/painel"
	remessaweb "github.com/wbsantos/abertura-contas/webapi/remessa"
	usuarioweb "github.com/wbsantos/abertura-contas/webapi/usuario"
)

// SetupApp builds the Fiber application from the service graph. viewsDir
// overrides the template directory, which defaults to ./templates.
func SetupApp(a *app.App, viewsDir ...string) *fiber.App {
	dir := "./templates"
	if len(viewsDir) > 0 {
		dir = viewsDir[0]
	}
	engine := html.New(dir, ".html")
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	engine.AddFunc("dec", func(i int) int { return i - 1 })
	engine.AddFunc("deref", func(p *uint) uint {
		if p == nil {
			return 0
		}
		return *p
	})

	fiberApp := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/main",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return c.Status(status).SendString("Erro interno do servidor.")
		},
	})

	store := session.New(session.Config{
		KeyLookup:      "cookie:" + a.Config.Session.CookieName,
		Expiration:     a.Config.Session.Expiry,
		CookieHTTPOnly: true,
	})

	fiberApp.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	fiberApp.Use(recover.New())

	gate := middleware.RequireLogin(store)
	adminGate := middleware.RequireAdmin(store)
	pageSize := a.Config.Paging.PageSize

	authweb.Routes(fiberApp, store, a.AuthService, a.UsuarioService)
	painelweb.Routes(fiberApp, store, gate, a.PainelService)
	usuarioweb.Routes(fiberApp, store, gate, adminGate, a.UsuarioService, pageSize)
	bancoweb.Routes(fiberApp, store, gate, a.BancoService, pageSize)
	agenciaweb.Routes(fiberApp, store, gate, a.AgenciaService, a.BancoService, pageSize)
	concedenteweb.Routes(fiberApp, store, gate, a.ConcedenteService, pageSize)
	remessaweb.Routes(fiberApp, store, gate, a.RemessaService, a.ConcedenteService, a.BancoService, a.RelatorioService, pageSize)
	contaweb.Routes(fiberApp, store, gate, a.ContaService, a.RemessaService, a.AgenciaService, pageSize)

	return fiberApp
}
