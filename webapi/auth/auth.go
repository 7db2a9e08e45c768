// Package auth serves the public pages: login, registration and the
// two-stage password reset.
package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/middleware"
	authsvc "github.com/wbsantos/abertura-contas/pkg/service/auth"
	usuariosvc "github.com/wbsantos/abertura-contas/pkg/service/usuario"
	"github.com/wbsantos/abertura-contas/webapi/common"
)

// LoginForm is the login page payload.
type LoginForm struct {
	Login string `form:"login" validate:"required"`
	Senha string `form:"senha" validate:"required"`
}

// RegistroForm is the self-registration payload. New registrations always
// start with the MONITOR perfil.
type RegistroForm struct {
	Nome          string `form:"nome" validate:"required"`
	Matricula     string `form:"matricula" validate:"required"`
	Email         string `form:"email" validate:"required,email"`
	Instituicao   string `form:"instituicao" validate:"required"`
	Login         string `form:"login" validate:"required"`
	Senha         string `form:"senha" validate:"required"`
	ConfirmaSenha string `form:"confirma_senha" validate:"required"`
}

// EmailForm is stage one of the password reset.
type EmailForm struct {
	Email string `form:"email" validate:"required,email"`
}

// ResetForm is stage two of the password reset.
type ResetForm struct {
	Email       string `form:"email" validate:"required,email"`
	NovaSenha   string `form:"nova_senha"`
	Confirmacao string `form:"confirmacao"`
}

// Routes registers the public routes.
func Routes(app *fiber.App, store *session.Store, authSvc *authsvc.Service, usuarioSvc *usuariosvc.Service) {
	app.Get("/", Index(store))
	app.Get("/login", LoginPage(store))
	app.Post("/login", Login(store, authSvc))
	app.Get("/registrar", RegistroPage(store))
	app.Post("/registrar", Registrar(store, usuarioSvc))
	app.Get("/esqueci-senha", EsqueciSenhaPage(store))
	app.Post("/esqueci-senha", EsqueciSenha(store, authSvc))
	app.Get("/logout", Logout(store))
}

// Index sends logged-in users to the dashboard and everyone else to /login.
func Index(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if logado(c, store) {
			return c.Redirect("/dashboard")
		}
		return c.Redirect("/login")
	}
}

// LoginPage renders the login form.
func LoginPage(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if logado(c, store) {
			return c.Redirect("/dashboard")
		}
		return common.Render(c, store, "auth/login", fiber.Map{"Titulo": "Login"})
	}
}

// Login authenticates the form credentials and opens the session.
func Login(store *session.Store, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, _ := common.BindForm[LoginForm](c)
		if form == nil {
			return common.FlashRedirect(c, store, "danger", "Login ou senha inválidos.", "/login")
		}
		u, err := authSvc.Login(c.Context(), form.Login, form.Senha)
		if err != nil {
			if errors.Is(err, domain.ErrCredenciaisInvalidas) {
				return common.FlashRedirect(c, store, "danger", "Login ou senha inválidos.", "/login")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao efetuar login. Tente novamente.", "/login")
		}
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		if err := sess.Regenerate(); err != nil {
			return err
		}
		middleware.Entrar(sess, u.ID, u.Nome, u.Perfil)
		middleware.Avisar(sess, "success", "Login realizado com sucesso!")
		if err := sess.Save(); err != nil {
			return err
		}
		return c.Redirect("/dashboard")
	}
}

// RegistroPage renders the registration form.
func RegistroPage(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.Render(c, store, "auth/registrar", fiber.Map{"Titulo": "Registrar"})
	}
}

// Registrar creates the usuário from the public registration form.
func Registrar(store *session.Store, usuarioSvc *usuariosvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, msgs := common.BindForm[RegistroForm](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/registrar")
		}
		if form.Senha != form.ConfirmaSenha {
			return common.FlashRedirect(c, store, "danger", "As senhas não conferem.", "/registrar")
		}
		err := usuarioSvc.Registrar(c.Context(), usuariosvc.RegistroInput{
			Nome:        form.Nome,
			Matricula:   form.Matricula,
			Email:       form.Email,
			Instituicao: form.Instituicao,
			Login:       form.Login,
			Senha:       form.Senha,
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicado) {
				return common.FlashRedirect(c, store, "warning",
					"Login, e-mail ou matrícula já cadastrados.", "/registrar")
			}
			return common.FlashRedirect(c, store, "danger", "Erro ao registrar usuário.", "/registrar")
		}
		return common.FlashRedirect(c, store, "success",
			"Cadastro realizado com sucesso! Faça login para continuar.", "/login")
	}
}

// EsqueciSenhaPage renders stage one of the password reset.
func EsqueciSenhaPage(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return common.Render(c, store, "auth/esqueci-senha", fiber.Map{"Titulo": "Esqueci minha senha"})
	}
}

// EsqueciSenha runs the two-stage reset. Stage one verifies the e-mail
// and re-renders with the new-password fields; stage two (stage=reset)
// stores the new password.
func EsqueciSenha(store *session.Store, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.FormValue("stage") == "reset" {
			form, msgs := common.BindForm[ResetForm](c)
			if form == nil {
				return common.FlashAllRedirect(c, store, "danger", msgs, "/esqueci-senha")
			}
			err := authSvc.RedefinirSenha(c.Context(), form.Email, form.NovaSenha, form.Confirmacao)
			switch {
			case err == nil:
				return common.FlashRedirect(c, store, "success",
					"Senha redefinida com sucesso! Faça login com a nova senha.", "/login")
			case errors.Is(err, domain.ErrCampoObrigatorio):
				return common.FlashRedirect(c, store, "danger", "Informe e confirme a nova senha.", "/esqueci-senha")
			case errors.Is(err, domain.ErrSenhasNaoConferem):
				return common.FlashRedirect(c, store, "danger", "As senhas não conferem.", "/esqueci-senha")
			case errors.Is(err, domain.ErrNaoEncontrado):
				return common.FlashRedirect(c, store, "warning", "E-mail não encontrado.", "/esqueci-senha")
			default:
				return common.FlashRedirect(c, store, "danger", "Erro ao redefinir a senha.", "/esqueci-senha")
			}
		}

		form, msgs := common.BindForm[EmailForm](c)
		if form == nil {
			return common.FlashAllRedirect(c, store, "danger", msgs, "/esqueci-senha")
		}
		ok, err := authSvc.VerificarEmail(c.Context(), form.Email)
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao verificar o e-mail.", "/esqueci-senha")
		}
		if !ok {
			return common.FlashRedirect(c, store, "warning", "E-mail não encontrado.", "/esqueci-senha")
		}
		return common.Render(c, store, "auth/esqueci-senha", fiber.Map{
			"Titulo": "Redefinir senha",
			"Email":  form.Email,
			"Stage":  "reset",
		})
	}
}

// Logout ends the session.
func Logout(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		if err := middleware.Sair(sess); err != nil {
			return err
		}
		return common.FlashRedirect(c, store, "info", "Você saiu do sistema.", "/login")
	}
}

func logado(c *fiber.Ctx, store *session.Store) bool {
	sess, err := store.Get(c)
	if err != nil {
		return false
	}
	return middleware.UsuarioDaSessao(sess) != nil
}
