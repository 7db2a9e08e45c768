// Package middleware carries the session-backed access control: who is
// logged in, flash notices and the login/admin gates applied to routes.
package middleware

import (
	"encoding/gob"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
)

// Session keys.
const (
	chaveUserID     = "user_id"
	chaveUserNome   = "user_name"
	chaveUserPerfil = "user_perfil"
	chaveAvisos     = "avisos"
)

// LocalUsuario is the fiber.Ctx locals key under which the login gate
// publishes the authenticated user for downstream handlers.
const LocalUsuario = "usuario_logado"

// UsuarioSessao is the logged-in user as carried by the session.
type UsuarioSessao struct {
	ID     uint
	Nome   string
	Perfil domain.Perfil
}

// Admin reports whether the session user holds the ADMIN perfil.
func (u *UsuarioSessao) Admin() bool {
	return u != nil && u.Perfil == domain.PerfilAdmin
}

// Aviso is a one-shot notice queued on the session and drained on the
// next rendered page.
type Aviso struct {
	Categoria string
	Mensagem  string
}

func init() {
	gob.Register([]Aviso{})
}

// Entrar records the authenticated user on the session.
func Entrar(sess *session.Session, id uint, nome string, perfil domain.Perfil) {
	sess.Set(chaveUserID, id)
	sess.Set(chaveUserNome, nome)
	sess.Set(chaveUserPerfil, string(perfil))
}

// Sair discards every key of the session, ending the login.
func Sair(sess *session.Session) error {
	return sess.Destroy()
}

// Avisar queues a flash notice on the session.
func Avisar(sess *session.Session, categoria, mensagem string) {
	avisos, _ := sess.Get(chaveAvisos).([]Aviso)
	sess.Set(chaveAvisos, append(avisos, Aviso{Categoria: categoria, Mensagem: mensagem}))
}

// ColherAvisos drains and returns the queued flash notices.
func ColherAvisos(sess *session.Session) []Aviso {
	avisos, _ := sess.Get(chaveAvisos).([]Aviso)
	if len(avisos) > 0 {
		sess.Delete(chaveAvisos)
	}
	return avisos
}

// UsuarioDaSessao decodes the logged-in user out of the session, or nil
// when the session is anonymous.
func UsuarioDaSessao(sess *session.Session) *UsuarioSessao {
	id, ok := sess.Get(chaveUserID).(uint)
	if !ok || id == 0 {
		return nil
	}
	nome, _ := sess.Get(chaveUserNome).(string)
	perfilStr, _ := sess.Get(chaveUserPerfil).(string)
	perfil, err := domain.ParsePerfil(perfilStr)
	if err != nil {
		return nil
	}
	return &UsuarioSessao{ID: id, Nome: nome, Perfil: perfil}
}

// UsuarioLogado returns the user published by RequireLogin, or nil on
// routes outside the gate.
func UsuarioLogado(c *fiber.Ctx) *UsuarioSessao {
	u, _ := c.Locals(LocalUsuario).(*UsuarioSessao)
	return u
}

// RequireLogin redirects anonymous requests to /login with a notice and
// publishes the session user in c.Locals for authenticated ones.
func RequireLogin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		u := UsuarioDaSessao(sess)
		if u == nil {
			Avisar(sess, "warning", "Faça login para acessar esta página.")
			if err := sess.Save(); err != nil {
				return err
			}
			return c.Redirect("/login")
		}
		c.Locals(LocalUsuario, u)
		return c.Next()
	}
}

// RequireAdmin rejects non-ADMIN users with a notice and a redirect to
// the dashboard. It must run after RequireLogin.
func RequireAdmin(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UsuarioLogado(c).Admin() {
			return c.Next()
		}
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		Avisar(sess, "danger", "Acesso negado: esta área é restrita a administradores.")
		if err := sess.Save(); err != nil {
			return err
		}
		return c.Redirect("/dashboard")
	}
}
