// Package remessa serves the remessa CRUD pages and the PDF export.
package remessa

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/middleware"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	bancosvc "github.com/wbsantos/abertura-contas/pkg/service/banco"
	concedentesvc "github.com/wbsantos/abertura-contas/pkg/service/concedente"
	relatoriosvc "github.com/wbsantos/abertura-contas/pkg/service/relatorio"
	remessasvc "github.com/wbsantos/abertura-contas/pkg/service/remessa"
	"github.com/wbsantos/abertura-contas/webapi/common"
)

// Form is the remessa create/edit payload. num_remessa never appears
// here: the number is assigned at creation and immutable after.
type Form struct {
	NumProcesso    string `form:"num_processo" validate:"required"`
	NomeProponente string `form:"nome_proponente" validate:"required"`
	CpfCnpj        string `form:"cpf_cnpj" validate:"required"`
	NumConvenio    string `form:"num_convenio" validate:"required"`
	Situacao       string `form:"situacao"`
	IDConcedente   uint   `form:"id_concedente" validate:"required"`
	IDBanco        uint   `form:"id_banco"`
}

// Routes registers the remessa routes behind the login gate.
func Routes(app *fiber.App, store *session.Store, gate fiber.Handler, svc *remessasvc.Service, concedenteSvc *concedentesvc.Service, bancoSvc *bancosvc.Service, relatorioSvc *relatoriosvc.Service, pageSize int) {
	g := app.Group("/remessas", gate)
	g.Get("/", Listar(store, svc, pageSize))
	g.Get("/criar", CriarPage(store, concedenteSvc, bancoSvc))
	g.Post("/criar", Criar(store, svc))
	g.Get("/editar/:id", EditarPage(store, svc, concedenteSvc, bancoSvc))
	g.Post("/editar/:id", Editar(store, svc))
	g.Get("/editar/:id/gerar-pdf", GerarPDF(store, relatorioSvc))
	g.Post("/excluir/:id", Excluir(store, svc))
}

// Listar pages remessas, searching by num_processo or nome_proponente,
// optionally filtered to one situação.
func Listar(store *session.Store, svc *remessasvc.Service, pageSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pagina, err := svc.List(c.Context(), list.Params{
			Busca:    c.Query("busca"),
			Filtro:   c.Query("situacao"),
			Page:     common.PageParam(c),
			PageSize: pageSize,
		})
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao listar remessas.", "/dashboard")
		}
		return common.Render(c, store, "remessas/list", fiber.Map{
			"Titulo":    "Remessas",
			"Pagina":    pagina,
			"Busca":     c.Query("busca"),
			"Filtro":    c.Query("situacao"),
			"Situacoes": domain.Situacoes(),
		})
	}
}

// CriarPage renders the creation form with the concedente, banco and
// situação dropdowns.
func CriarPage(store *session.Store, concedenteSvc *concedentesvc.Service, bancoSvc *bancosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		bind, err := dropdowns(c, concedenteSvc, bancoSvc)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao carregar o formulário.", "/remessas")
		}
		bind["Titulo"] = "Nova remessa"
		return common.Render(c, store, "remessas/form", bind)
	}
}

// Criar inserts a remessa owned by the logged-in usuário.
func Criar(store *session.Store, svc *remessasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/remessas/criar")
		}
		in, err := entrada(form)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Situação inválida.", "/remessas/criar")
		}
		u := middleware.UsuarioLogado(c)
		if err := svc.Criar(c.Context(), *in, u.ID); err != nil {
			switch {
			case errors.Is(err, domain.ErrDuplicado):
				return common.FlashRedirect(c, store, "warning",
					"Já existe uma remessa com este número de processo.", "/remessas/criar")
			case errors.Is(err, domain.ErrNaoEncontrado):
				return common.FlashRedirect(c, store, "warning",
					"Concedente ou banco não encontrado.", "/remessas/criar")
			default:
				return common.FlashRedirect(c, store, "danger", "Erro ao cadastrar a remessa.", "/remessas/criar")
			}
		}
		return common.FlashRedirect(c, store, "success", "Remessa cadastrada com sucesso!", "/remessas")
	}
}

// EditarPage renders the edit form.
func EditarPage(store *session.Store, svc *remessasvc.Service, concedenteSvc *concedentesvc.Service, bancoSvc *bancosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Remessa não encontrada.", "/remessas")
		}
		r, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Remessa não encontrada.", "/remessas")
		}
		bind, err := dropdowns(c, concedenteSvc, bancoSvc)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao carregar o formulário.", "/remessas")
		}
		bind["Titulo"] = fmt.Sprintf("Editar remessa Nº %d", r.NumRemessa)
		bind["Remessa"] = r
		return common.Render(c, store, "remessas/form", bind)
	}
}

// Editar applies the edit form. The situação accepts any value.
func Editar(store *session.Store, svc *remessasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Remessa não encontrada.", "/remessas")
		}
		form, msgs := common.BindForm[Form](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/remessas/editar/"+c.Params("id"))
		}
		in, err := entrada(form)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Situação inválida.", "/remessas/editar/"+c.Params("id"))
		}
		update := dto.RemessaUpdate{
			NumProcesso:    &in.NumProcesso,
			NomeProponente: &in.NomeProponente,
			CpfCnpj:        &in.CpfCnpj,
			NumConvenio:    &in.NumConvenio,
			IDConcedente:   &in.IDConcedente,
			IDBanco:        in.IDBanco,
			// The form always posts id_banco; an empty choice detaches
			// the banco instead of keeping the stored one.
			LimparBanco: in.IDBanco == nil,
		}
		if in.Situacao != "" {
			update.Situacao = &in.Situacao
		}
		err = svc.Atualizar(c.Context(), id, update)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNaoEncontrado):
				return common.FlashRedirect(c, store, "warning",
					"Remessa, concedente ou banco não encontrado.", "/remessas")
			case errors.Is(err, domain.ErrDuplicado):
				return common.FlashRedirect(c, store, "warning",
					"Já existe uma remessa com este número de processo.", "/remessas/editar/"+c.Params("id"))
			default:
				return common.FlashRedirect(c, store, "danger", "Erro ao atualizar a remessa.", "/remessas")
			}
		}
		return common.FlashRedirect(c, store, "success", "Remessa atualizada com sucesso!", "/remessas")
	}
}

// GerarPDF streams the remessa detail sheet inline.
func GerarPDF(store *session.Store, relatorioSvc *relatoriosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Remessa não encontrada.", "/remessas")
		}
		doc, nome, err := relatorioSvc.GerarRemessaPDF(c.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNaoEncontrado) {
				return common.FlashRedirect(c, store, "warning", "Remessa não encontrada.", "/remessas")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao gerar o PDF.", "/remessas")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%s", nome))
		return c.Send(doc)
	}
}

// Excluir deletes a remessa unless contas convênio still reference it.
func Excluir(store *session.Store, svc *remessasvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Remessa não encontrada.", "/remessas")
		}
		switch err := svc.Excluir(c.Context(), id); {
		case err == nil:
			return common.FlashRedirect(c, store, "success", "Remessa excluída com sucesso!", "/remessas")
		case errors.Is(err, domain.ErrNaoEncontrado):
			return common.FlashRedirect(c, store, "warning", "Remessa não encontrada.", "/remessas")
		case errors.Is(err, domain.ErrPossuiDependentes):
			return common.FlashRedirect(c, store, "warning",
				"Não é possível excluir a remessa: existem contas convênio vinculadas.", "/remessas")
		default:
			return common.FlashRedirect(c, store, "danger", "Erro ao excluir a remessa.", "/remessas")
		}
	}
}

func entrada(form *Form) (*remessasvc.CriarInput, error) {
	in := &remessasvc.CriarInput{
		NumProcesso:    form.NumProcesso,
		NomeProponente: form.NomeProponente,
		CpfCnpj:        form.CpfCnpj,
		NumConvenio:    form.NumConvenio,
		IDConcedente:   form.IDConcedente,
	}
	if form.Situacao != "" {
		situacao, err := domain.ParseSituacao(form.Situacao)
		if err != nil {
			return nil, err
		}
		in.Situacao = situacao
	}
	if form.IDBanco != 0 {
		in.IDBanco = &form.IDBanco
	}
	return in, nil
}

func dropdowns(c *fiber.Ctx, concedenteSvc *concedentesvc.Service, bancoSvc *bancosvc.Service) (fiber.Map, error) {
	concedentes, err := concedenteSvc.All(c.Context())
	if err != nil {
		return nil, err
	}
	bancos, err := bancoSvc.All(c.Context())
	if err != nil {
		return nil, err
	}
	return fiber.Map{
		"Concedentes": concedentes,
		"Bancos":      bancos,
		"Situacoes":   domain.Situacoes(),
	}, nil
}
