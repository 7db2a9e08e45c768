// Package banco serves the banco CRUD pages.
package banco

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	bancosvc "github.com/wbsantos/abertura-contas/pkg/service/banco"
	"github.com/wbsantos/abertura-contas/webapi/common"
)

// Form is the banco create/edit payload.
type Form struct {
	Nome string `form:"nome" validate:"required"`
}

// Routes registers the banco routes behind the login gate.
func Routes(app *fiber.App, store *session.Store, gate fiber.Handler, svc *bancosvc.Service, pageSize int) {
	g := app.Group("/bancos", gate)
	g.Get("/", Listar(store, svc, pageSize))
	g.Get("/criar", CriarPage(store))
	g.Post("/criar", Criar(store, svc))
	g.Get("/editar/:id", EditarPage(store, svc))
	g.Post("/editar/:id", Editar(store, svc))
	g.Post("/excluir/:id", Excluir(store, svc))
}

// Listar pages bancos, searching by nome.
func Listar(store *session.Store, svc *bancosvc.Service, pageSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pagina, err := svc.List(c.Context(), list.Params{
			Busca:    c.Query("busca"),
			Page:     common.PageParam(c),
			PageSize: pageSize,
		})
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao listar bancos.", "/dashboard")
		}
		return common.Render(c, store, "bancos/list", fiber.Map{
			"Titulo": "Bancos",
			"Pagina": pagina,
			"Busca":  c.Query("busca"),
		})
	}
}

// CriarPage renders the creation form.
func CriarPage(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.Render(c, store, "bancos/form", fiber.Map{"Titulo": "Novo banco"})
	}
}

// Criar inserts a banco from the form.
func Criar(store *session.Store, svc *bancosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/bancos/criar")
		}
		if err := svc.Criar(c.Context(), form.Nome); err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao cadastrar o banco.", "/bancos/criar")
		}
		return common.FlashRedirect(c, store, "success", "Banco cadastrado com sucesso!", "/bancos")
	}
}

// EditarPage renders the edit form.
func EditarPage(store *session.Store, svc *bancosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Banco não encontrado.", "/bancos")
		}
		b, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Banco não encontrado.", "/bancos")
		}
		return common.Render(c, store, "bancos/form", fiber.Map{"Titulo": "Editar banco", "Banco": b})
	}
}

// Editar applies the edit form.
func Editar(store *session.Store, svc *bancosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Banco não encontrado.", "/bancos")
		}
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/bancos/editar/"+c.Params("id"))
		}
		if err := svc.Atualizar(c.Context(), id, form.Nome); err != nil {
			if errors.Is(err, domain.ErrNaoEncontrado) {
				return common.FlashRedirect(c, store, "warning", "Banco não encontrado.", "/bancos")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao atualizar o banco.", "/bancos")
		}
		return common.FlashRedirect(c, store, "success", "Banco atualizado com sucesso!", "/bancos")
	}
}

// Excluir deletes a banco unless agências or remessas still reference it.
func Excluir(store *session.Store, svc *bancosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Banco não encontrado.", "/bancos")
		}
		switch err := svc.Excluir(c.Context(), id); {
		case err == nil:
			return common.FlashRedirect(c, store, "success", "Banco excluído com sucesso!", "/bancos")
		case errors.Is(err, domain.ErrNaoEncontrado):
			return common.FlashRedirect(c, store, "warning", "Banco não encontrado.", "/bancos")
		case errors.Is(err, domain.ErrPossuiDependentes):
			return common.FlashRedirect(c, store, "warning",
				"Não é possível excluir o banco: existem agências ou remessas vinculadas.", "/bancos")
		default:
			return common.FlashRedirect(c, store, "danger", "Erro ao excluir o banco.", "/bancos")
		}
	}
}
