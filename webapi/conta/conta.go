// Package conta serves the conta convênio CRUD pages.
package conta

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	agenciasvc "github.com/wbsantos/abertura-contas/pkg/service/agencia"
	contasvc "github.com/wbsantos/abertura-contas/pkg/service/conta"
	remessasvc "github.com/wbsantos/abertura-contas/pkg/service/remessa"
	"github.com/wbsantos/abertura-contas/webapi/common"
)

// Form is the conta convênio create/edit payload. DtAbertura comes in as
// the HTML date input format.
type Form struct {
	NumConta   string `form:"num_conta" validate:"required"`
	DvConta    string `form:"dv_conta" validate:"required,len=1"`
	DtAbertura string `form:"dt_abertura" validate:"required"`
	IDRemessa  uint   `form:"id_remessa" validate:"required"`
	IDAgencia  uint   `form:"id_agencia" validate:"required"`
}

// Routes registers the conta convênio routes behind the login gate.
func Routes(app *fiber.App, store *session.Store, gate fiber.Handler, svc *contasvc.Service, remessaSvc *remessasvc.Service, agenciaSvc *agenciasvc.Service, pageSize int) {
	g := app.Group("/contas-convenio", gate)
	g.Get("/", Listar(store, svc, pageSize))
	g.Get("/criar", CriarPage(store, remessaSvc, agenciaSvc))
	g.Post("/criar", Criar(store, svc))
	g.Get("/editar/:id", EditarPage(store, svc, remessaSvc, agenciaSvc))
	g.Post("/editar/:id", Editar(store, svc))
	g.Post("/excluir/:id", Excluir(store, svc))
}

// Listar pages contas, searching by num_conta.
func Listar(store *session.Store, svc *contasvc.Service, pageSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pagina, err := svc.List(c.Context(), list.Params{
			Busca:    c.Query("busca"),
			Page:     common.PageParam(c),
			PageSize: pageSize,
		})
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao listar contas convênio.", "/dashboard")
		}
		return common.Render(c, store, "contas/list", fiber.Map{
			"Titulo": "Contas convênio",
			"Pagina": pagina,
			"Busca":  c.Query("busca"),
		})
	}
}

// CriarPage renders the creation form with the remessa and agência
// dropdowns.
func CriarPage(store *session.Store, remessaSvc *remessasvc.Service, agenciaSvc *agenciasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bind, err := dropdowns(c, remessaSvc, agenciaSvc)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao carregar o formulário.", "/contas-convenio")
		}
		bind["Titulo"] = "Nova conta convênio"
		return common.Render(c, store, "contas/form", bind)
	}
}

// Criar inserts the conta; its remessa is flipped to CONTA_ABERTA in the
// same transaction.
func Criar(store *session.Store, svc *contasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/contas-convenio/criar")
		}
		create, err := payload(form)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Data de abertura inválida.", "/contas-convenio/criar")
		}
		if err := svc.Criar(c.Context(), *create); err != nil {
			if errors.Is(err, domain.ErrNaoEncontrado) {
				return common.FlashRedirect(c, store, "warning",
					"Remessa ou agência não encontrada.", "/contas-convenio/criar")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao cadastrar a conta.", "/contas-convenio/criar")
		}
		return common.FlashRedirect(c, store, "success",
			"Conta cadastrada com sucesso! A remessa foi marcada como conta aberta.", "/contas-convenio")
	}
}

// EditarPage renders the edit form.
func EditarPage(store *session.Store, svc *contasvc.Service, remessaSvc *remessasvc.Service, agenciaSvc *agenciasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Conta não encontrada.", "/contas-convenio")
		}
		conta, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Conta não encontrada.", "/contas-convenio")
		}
		bind, err := dropdowns(c, remessaSvc, agenciaSvc)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao carregar o formulário.", "/contas-convenio")
		}
		bind["Titulo"] = "Editar conta convênio"
		bind["Conta"] = conta
		return common.Render(c, store, "contas/form", bind)
	}
}

// Editar applies the edit form. Editing never changes any remessa
// situação.
func Editar(store *session.Store, svc *contasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Conta não encontrada.", "/contas-convenio")
		}
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/contas-convenio/editar/"+c.Params("id"))
		}
		create, err := payload(form)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Data de abertura inválida.",
				"/contas-convenio/editar/"+c.Params("id"))
		}
		err = svc.Atualizar(c.Context(), id, dto.ContaUpdate{
			NumConta:   &create.NumConta,
			DvConta:    &create.DvConta,
			DtAbertura: &create.DtAbertura,
			IDRemessa:  &create.IDRemessa,
			IDAgencia:  &create.IDAgencia,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNaoEncontrado) {
				return common.FlashRedirect(c, store, "warning",
					"Conta, remessa ou agência não encontrada.", "/contas-convenio")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao atualizar a conta.", "/contas-convenio")
		}
		return common.FlashRedirect(c, store, "success", "Conta atualizada com sucesso!", "/contas-convenio")
	}
}

// Excluir deletes a conta.
func Excluir(store *session.Store, svc *contasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Conta não encontrada.", "/contas-convenio")
		}
		switch err := svc.Excluir(c.Context(), id); {
		case err == nil:
			return common.FlashRedirect(c, store, "success", "Conta excluída com sucesso!", "/contas-convenio")
		case errors.Is(err, domain.ErrNaoEncontrado):
			return common.FlashRedirect(c, store, "warning", "Conta não encontrada.", "/contas-convenio")
		default:
			return common.FlashRedirect(c, store, "danger", "Erro ao excluir a conta.", "/contas-convenio")
		}
	}
}

func payload(form *Form) (*dto.ContaCreate, error) {
	abertura, err := time.Parse("2006-01-02", form.DtAbertura)
	if err != nil {
		return nil, err
	}
	return &dto.ContaCreate{
		NumConta:   form.NumConta,
		DvConta:    form.DvConta,
		DtAbertura: abertura,
		IDRemessa:  form.IDRemessa,
		IDAgencia:  form.IDAgencia,
	}, nil
}

func dropdowns(c *fiber.Ctx, remessaSvc *remessasvc.Service, agenciaSvc *agenciasvc.Service) (fiber.Map, error) {
	remessas, err := remessaSvc.All(c.Context())
	if err != nil {
		return nil, err
	}
	agencias, err := agenciaSvc.All(c.Context())
	if err != nil {
		return nil, err
	}
	return fiber.Map{"Remessas": remessas, "Agencias": agencias}, nil
}
