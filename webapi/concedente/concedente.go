// Package concedente serves the concedente CRUD pages.
package concedente

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	concedentesvc "github.com/wbsantos/abertura-contas/pkg/service/concedente"
	"github.com/wbsantos/abertura-contas/webapi/common"
)

// Form is the concedente create/edit payload.
type Form struct {
	CodigoSecretaria string `form:"codigo_secretaria" validate:"required"`
	Sigla            string `form:"sigla" validate:"required"`
	Nome             string `form:"nome" validate:"required"`
}

// Routes registers the concedente routes behind the login gate.
func Routes(app *fiber.App, store *session.Store, gate fiber.Handler, svc *concedentesvc.Service, pageSize int) {
	g := app.Group("/concedentes", gate)
	g.Get("/", Listar(store, svc, pageSize))
	g.Get("/criar", CriarPage(store))
	g.Post("/criar", Criar(store, svc))
	g.Get("/editar/:id", EditarPage(store, svc))
	g.Post("/editar/:id", Editar(store, svc))
	g.Post("/excluir/:id", Excluir(store, svc))
}

// Listar pages concedentes, searching by nome or sigla.
func Listar(store *session.Store, svc *concedentesvc.Service, pageSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pagina, err := svc.List(c.Context(), list.Params{
			Busca:    c.Query("busca"),
			Page:     common.PageParam(c),
			PageSize: pageSize,
		})
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao listar concedentes.", "/dashboard")
		}
		return common.Render(c, store, "concedentes/list", fiber.Map{
			"Titulo": "Concedentes",
			"Pagina": pagina,
			"Busca":  c.Query("busca"),
		})
	}
}

// CriarPage renders the creation form.
func CriarPage(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.Render(c, store, "concedentes/form", fiber.Map{"Titulo": "Novo concedente"})
	}
}

// Criar inserts a concedente from the form. A duplicated código da
// secretaria is reported back to the form.
func Criar(store *session.Store, svc *concedentesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/concedentes/criar")
		}
		err := svc.Criar(c.Context(), dto.ConcedenteCreate{
			CodigoSecretaria: form.CodigoSecretaria,
			Sigla:            form.Sigla,
			Nome:             form.Nome,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicado) {
				return common.FlashRedirect(c, store, "warning",
					"Já existe um concedente com este código de secretaria.", "/concedentes/criar")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao cadastrar o concedente.", "/concedentes/criar")
		}
		return common.FlashRedirect(c, store, "success", "Concedente cadastrado com sucesso!", "/concedentes")
	}
}

// EditarPage renders the edit form.
func EditarPage(store *session.Store, svc *concedentesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Concedente não encontrado.", "/concedentes")
		}
		cc, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Concedente não encontrado.", "/concedentes")
		}
		return common.Render(c, store, "concedentes/form", fiber.Map{"Titulo": "Editar concedente", "Concedente": cc})
	}
}

// Editar applies the edit form.
func Editar(store *session.Store, svc *concedentesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Concedente não encontrado.", "/concedentes")
		}
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/concedentes/editar/"+c.Params("id"))
		}
		err = svc.Atualizar(c.Context(), id, dto.ConcedenteUpdate{
			CodigoSecretaria: &form.CodigoSecretaria,
			Sigla:            &form.Sigla,
			Nome:             &form.Nome,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNaoEncontrado):
				return common.FlashRedirect(c, store, "warning", "Concedente não encontrado.", "/concedentes")
			case errors.Is(err, domain.ErrDuplicado):
				return common.FlashRedirect(c, store, "warning",
					"Já existe um concedente com este código de secretaria.", "/concedentes/editar/"+c.Params("id"))
			default:
				return common.FlashRedirect(c, store, "danger", "Erro ao atualizar o concedente.", "/concedentes")
			}
		}
		return common.FlashRedirect(c, store, "success", "Concedente atualizado com sucesso!", "/concedentes")
	}
}

// Excluir deletes a concedente unless remessas still reference it.
func Excluir(store *session.Store, svc *concedentesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Concedente não encontrado.", "/concedentes")
		}
		switch err := svc.Excluir(c.Context(), id); {
		case err == nil:
			return common.FlashRedirect(c, store, "success", "Concedente excluído com sucesso!", "/concedentes")
		case errors.Is(err, domain.ErrNaoEncontrado):
			return common.FlashRedirect(c, store, "warning", "Concedente não encontrado.", "/concedentes")
		case errors.Is(err, domain.ErrPossuiDependentes):
			return common.FlashRedirect(c, store, "warning",
				"Não é possível excluir o concedente: existem remessas vinculadas.", "/concedentes")
		default:
			return common.FlashRedirect(c, store, "danger", "Erro ao excluir o concedente.", "/concedentes")
		}
	}
}
