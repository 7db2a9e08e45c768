// Package agencia serves the agência CRUD pages.
package agencia

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	agenciasvc "github.com/wbsantos/abertura-contas/pkg/service/agencia"
	bancosvc "github.com/wbsantos/abertura-contas/pkg/service/banco"
	"github.com/wbsantos/abertura-contas/webapi/common"
)

// Form is the agência create/edit payload.
type Form struct {
	NomeAgencia string `form:"nome_agencia" validate:"required"`
	NumAgencia  int    `form:"num_agencia" validate:"required"`
	DvAgencia   string `form:"dv_agencia" validate:"required,len=1"`
	Logadouro   string `form:"logadouro" validate:"required"`
	Cidade      string `form:"cidade" validate:"required"`
	UF          string `form:"uf" validate:"required,len=2"`
	IDBanco     uint   `form:"id_banco" validate:"required"`
}

// Routes registers the agência routes behind the login gate.
func Routes(app *fiber.App, store *session.Store, gate fiber.Handler, svc *agenciasvc.Service, bancoSvc *bancosvc.Service, pageSize int) {
	g := app.Group("/agencias", gate)
	g.Get("/", Listar(store, svc, pageSize))
	g.Get("/criar", CriarPage(store, bancoSvc))
	g.Post("/criar", Criar(store, svc))
	g.Get("/editar/:id", EditarPage(store, svc, bancoSvc))
	g.Post("/editar/:id", Editar(store, svc))
	g.Post("/excluir/:id", Excluir(store, svc))
}

// Listar pages agências, searching by nome_agencia or cidade.
func Listar(store *session.Store, svc *agenciasvc.Service, pageSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pagina, err := svc.List(c.Context(), list.Params{
			Busca:    c.Query("busca"),
			Page:     common.PageParam(c),
			PageSize: pageSize,
		})
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao listar agências.", "/dashboard")
		}
		return common.Render(c, store, "agencias/list", fiber.Map{
			"Titulo": "Agências",
			"Pagina": pagina,
			"Busca":  c.Query("busca"),
		})
	}
}

// CriarPage renders the creation form with the banco and UF dropdowns.
func CriarPage(store *session.Store, bancoSvc *bancosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bancos, err := bancoSvc.All(c.Context())
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao carregar os bancos.", "/agencias")
		}
		return common.Render(c, store, "agencias/form", fiber.Map{
			"Titulo": "Nova agência",
			"Bancos": bancos,
			"UFs":    domain.UFs,
		})
	}
}

// Criar inserts an agência from the form.
func Criar(store *session.Store, svc *agenciasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/agencias/criar")
		}
		err := svc.Criar(c.Context(), dto.AgenciaCreate{
			NomeAgencia: form.NomeAgencia,
			NumAgencia:  form.NumAgencia,
			DvAgencia:   form.DvAgencia,
			Logadouro:   form.Logadouro,
			Cidade:      form.Cidade,
			UF:          form.UF,
			IDBanco:     form.IDBanco,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNaoEncontrado) {
				return common.FlashRedirect(c, store, "warning", "Banco não encontrado.", "/agencias/criar")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao cadastrar a agência.", "/agencias/criar")
		}
		return common.FlashRedirect(c, store, "success", "Agência cadastrada com sucesso!", "/agencias")
	}
}

// EditarPage renders the edit form.
func EditarPage(store *session.Store, svc *agenciasvc.Service, bancoSvc *bancosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Agência não encontrada.", "/agencias")
		}
		a, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Agência não encontrada.", "/agencias")
		}
		bancos, err := bancoSvc.All(c.Context())
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao carregar os bancos.", "/agencias")
		}
		return common.Render(c, store, "agencias/form", fiber.Map{
			"Titulo":  "Editar agência",
			"Agencia": a,
			"Bancos":  bancos,
			"UFs":     domain.UFs,
		})
	}
}

// Editar applies the edit form.
func Editar(store *session.Store, svc *agenciasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Agência não encontrada.", "/agencias")
		}
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/agencias/editar/"+c.Params("id"))
		}
		err = svc.Atualizar(c.Context(), id, dto.AgenciaUpdate{
			NomeAgencia: &form.NomeAgencia,
			NumAgencia:  &form.NumAgencia,
			DvAgencia:   &form.DvAgencia,
			Logadouro:   &form.Logadouro,
			Cidade:      &form.Cidade,
			UF:          &form.UF,
			IDBanco:     &form.IDBanco,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNaoEncontrado) {
				return common.FlashRedirect(c, store, "warning", "Agência não encontrada.", "/agencias")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao atualizar a agência.", "/agencias")
		}
		return common.FlashRedirect(c, store, "success", "Agência atualizada com sucesso!", "/agencias")
	}
}

// Excluir deletes an agência unless contas convênio still reference it.
func Excluir(store *session.Store, svc *agenciasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Agência não encontrada.", "/agencias")
		}
		switch err := svc.Excluir(c.Context(), id); {
		case err == nil:
			return common.FlashRedirect(c, store, "success", "Agência excluída com sucesso!", "/agencias")
		case errors.Is(err, domain.ErrNaoEncontrado):
			return common.FlashRedirect(c, store, "warning", "Agência não encontrada.", "/agencias")
		case errors.Is(err, domain.ErrPossuiDependentes):
			return common.FlashRedirect(c, store, "warning",
				"Não é possível excluir a agência: existem contas convênio vinculadas.", "/agencias")
		default:
			return common.FlashRedirect(c, store, "danger", "Erro ao excluir a agência.", "/agencias")
		}
	}
}
