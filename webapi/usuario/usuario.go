// Package usuario serves the usuário administration pages. Listing,
// creating and deleting are restricted to ADMIN; editing is open to the
// user themselves for their basic fields.
package usuario

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/middleware"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	usuariosvc "github.com/wbsantos/abertura-contas/pkg/service/usuario"
	"github.com/wbsantos/abertura-contas/webapi/common"
)

// CriarForm is the admin user-creation payload.
type CriarForm struct {
	Nome        string `form:"nome" validate:"required"`
	Matricula   string `form:"matricula" validate:"required"`
	Email       string `form:"email" validate:"required,email"`
	Instituicao string `form:"instituicao" validate:"required"`
	Login       string `form:"login" validate:"required"`
	Senha       string `form:"senha" validate:"required"`
	Perfil      string `form:"perfil" validate:"required"`
}

// EditarForm is the edit payload. Senha, when filled, replaces the
// current password.
type EditarForm struct {
	Nome        string `form:"nome" validate:"required"`
	Matricula   string `form:"matricula"`
	Email       string `form:"email" validate:"required,email"`
	Instituicao string `form:"instituicao" validate:"required"`
	Login       string `form:"login"`
	Senha       string `form:"senha"`
	Perfil      string `form:"perfil"`
	Status      string `form:"status"`
}

// Routes registers the usuário routes. Everything except editing sits
// behind the admin gate; the edit handler enforces the self-edit rule
// itself.
func Routes(app *fiber.App, store *session.Store, gate, adminGate fiber.Handler, svc *usuariosvc.Service, pageSize int) {
	g := app.Group("/usuarios", gate)
	g.Get("/", adminGate, Listar(store, svc, pageSize))
	g.Get("/criar", adminGate, CriarPage(store))
	g.Post("/criar", adminGate, Criar(store, svc))
	g.Get("/editar/:id", EditarPage(store, svc))
	g.Post("/editar/:id", Editar(store, svc))
	g.Post("/excluir/:id", adminGate, Excluir(store, svc))
}

// Listar pages usuários, searching by nome or login, optionally filtered
// to one perfil.
func Listar(store *session.Store, svc *usuariosvc.Service, pageSize int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pagina, err := svc.List(c.Context(), list.Params{
			Busca:    c.Query("busca"),
			Filtro:   c.Query("perfil"),
			Page:     common.PageParam(c),
			PageSize: pageSize,
		})
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao listar usuários.", "/dashboard")
		}
		return common.Render(c, store, "usuarios/list", fiber.Map{
			"Titulo": "Usuários",
			"Pagina": pagina,
			"Busca":  c.Query("busca"),
			"Filtro": c.Query("perfil"),
			"Perfis": domain.Perfis(),
		})
	}
}

// CriarPage renders the admin creation form.
func CriarPage(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.Render(c, store, "usuarios/form", fiber.Map{
			"Titulo": "Novo usuário",
			"Perfis": domain.Perfis(),
			"Status": domain.StatusUsuarios(),
		})
	}
}

// Criar inserts a usuário with the perfil chosen by the admin.
func Criar(store *session.Store, svc *usuariosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, msgs := common.BindForm[CriarForm](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/usuarios/criar")
		}
		perfil, err := domain.ParsePerfil(form.Perfil)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Perfil inválido.", "/usuarios/criar")
		}
		err = svc.Registrar(c.Context(), usuariosvc.RegistroInput{
			Nome:        form.Nome,
			Matricula:   form.Matricula,
			Email:       form.Email,
			Instituicao: form.Instituicao,
			Login:       form.Login,
			Senha:       form.Senha,
			Perfil:      perfil,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicado) {
				return common.FlashRedirect(c, store, "warning",
					"Login, e-mail ou matrícula já cadastrados.", "/usuarios/criar")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao cadastrar o usuário.", "/usuarios/criar")
		}
		return common.FlashRedirect(c, store, "success", "Usuário cadastrado com sucesso!", "/usuarios")
	}
}

// EditarPage renders the edit form for admins or for the user editing
// themselves.
func EditarPage(store *session.Store, svc *usuariosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Usuário não encontrado.", "/dashboard")
		}
		logado := middleware.UsuarioLogado(c)
		if !logado.Admin() && logado.ID != id {
			return acessoNegado(c, store)
		}
		u, err := svc.Get(c.Context(), id)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Usuário não encontrado.", destinoLista(logado))
		}
		return common.Render(c, store, "usuarios/form", fiber.Map{
			"Titulo":  "Editar usuário",
			"Usuario": u,
			"Perfis":  domain.Perfis(),
			"Status":  domain.StatusUsuarios(),
		})
	}
}

// Editar applies the edit form. Non-admins may change only their own
// nome, e-mail, instituição and password.
func Editar(store *session.Store, svc *usuariosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Usuário não encontrado.", "/dashboard")
		}
		logado := middleware.UsuarioLogado(c)
		if !logado.Admin() && logado.ID != id {
			return acessoNegado(c, store)
		}
		form, msgs := common.BindForm[EditarForm](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/usuarios/editar/"+c.Params("id"))
		}
		update := dto.UsuarioUpdate{
			Nome:        &form.Nome,
			Email:       &form.Email,
			Instituicao: &form.Instituicao,
		}
		if logado.Admin() {
			if form.Matricula != "" {
				update.Matricula = &form.Matricula
			}
			if form.Login != "" {
				update.Login = &form.Login
			}
			if form.Perfil != "" {
				perfil, err := domain.ParsePerfil(form.Perfil)
				if err != nil {
					return common.FlashRedirect(c, store, "danger", "Perfil inválido.", "/usuarios/editar/"+c.Params("id"))
				}
				update.Perfil = &perfil
			}
			if form.Status != "" {
				status, err := domain.ParseStatusUsuario(form.Status)
				if err != nil {
					return common.FlashRedirect(c, store, "danger", "Status inválido.", "/usuarios/editar/"+c.Params("id"))
				}
				update.Status = &status
			}
		}
		if err := svc.Atualizar(c.Context(), id, update, form.Senha); err != nil {
			switch {
			case errors.Is(err, domain.ErrNaoEncontrado):
				return common.FlashRedirect(c, store, "warning", "Usuário não encontrado.", destinoLista(logado))
			case errors.Is(err, domain.ErrDuplicado):
				return common.FlashRedirect(c, store, "warning",
					"Login, e-mail ou matrícula já cadastrados.", "/usuarios/editar/"+c.Params("id"))
			default:
				return common.FlashRedirect(c, store, "danger", "Erro ao atualizar o usuário.", destinoLista(logado))
			}
		}
		return common.FlashRedirect(c, store, "success", "Usuário atualizado com sucesso!", destinoLista(logado))
	}
}

// Excluir deletes a usuário unless remessas still reference it.
func Excluir(store *session.Store, svc *usuariosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c)
		if err != nil {
			return common.FlashRedirect(c, store, "warning", "Usuário não encontrado.", "/usuarios")
		}
		if middleware.UsuarioLogado(c).ID == id {
			return common.FlashRedirect(c, store, "warning", "Você não pode excluir o próprio usuário.", "/usuarios")
		}
		switch err := svc.Excluir(c.Context(), id); {
		case err == nil:
			return common.FlashRedirect(c, store, "success", "Usuário excluído com sucesso!", "/usuarios")
		case errors.Is(err, domain.ErrNaoEncontrado):
			return common.FlashRedirect(c, store, "warning", "Usuário não encontrado.", "/usuarios")
		case errors.Is(err, domain.ErrPossuiDependentes):
			return common.FlashRedirect(c, store, "warning",
				"Não é possível excluir o usuário: existem remessas vinculadas.", "/usuarios")
		default:
			return common.FlashRedirect(c, store, "danger", "Erro ao excluir o usuário.", "/usuarios")
		}
	}
}

func acessoNegado(c *fiber.Ctx, store *session.Store) error {
	return common.FlashRedirect(c, store, "danger",
		"Acesso negado: você só pode editar o próprio cadastro.", "/dashboard")
}

func destinoLista(u *middleware.UsuarioSessao) string {
	if u.Admin() {
		return "/usuarios"
	}
	return "/dashboard"
}
