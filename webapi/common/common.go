// Package common holds the helpers shared by every handler package:
// form binding with validation, flash notices and view rendering.
package common

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/middleware"
)

var validate = validator.New()

// BindForm parses the request form into T and validates it. On failure
// it returns nil plus the Portuguese field messages to flash back.
func BindForm[T any](c *fiber.Ctx) (*T, []string) {
	input := new(T)
	if err := c.BodyParser(input); err != nil {
		return nil, []string{"Dados do formulário inválidos."}
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, []string{"Dados do formulário inválidos."}
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, mensagemCampo(fe))
		}
		return nil, msgs
	}
	return input, nil
}

func mensagemCampo(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "O campo " + fe.Field() + " é obrigatório."
	case "email":
		return "E-mail inválido."
	case "len", "max", "min":
		return "O campo " + fe.Field() + " tem tamanho inválido."
	default:
		return "O campo " + fe.Field() + " é inválido."
	}
}

// ParseID reads the :id route parameter as an unsigned integer.
func ParseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("identificador inválido")
	}
	return uint(id), nil
}

// PageParam reads the pagina query parameter, defaulting to 1.
func PageParam(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("pagina", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Render executes a view within the shared layout, merging the drained
// flash notices and the logged-in user into the bind map.
func Render(c *fiber.Ctx, store *session.Store, nome string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	if avisos := middleware.ColherAvisos(sess); len(avisos) > 0 {
		bind["Avisos"] = avisos
		if err := sess.Save(); err != nil {
			return err
		}
	}
	if u := middleware.UsuarioLogado(c); u != nil {
		bind["UsuarioLogado"] = u
	}
	return c.Render(nome, bind)
}

// FlashRedirect queues a single notice and redirects.
func FlashRedirect(c *fiber.Ctx, store *session.Store, categoria, mensagem, destino string) error {
	return FlashAllRedirect(c, store, categoria, []string{mensagem}, destino)
}

// FlashAllRedirect queues one notice per message and redirects.
func FlashAllRedirect(c *fiber.Ctx, store *session.Store, categoria string, mensagens []string, destino string) error {
	sess, err := store.Get(c)
	if err != nil {
		return err
	}
	for _, m := range mensagens {
		middleware.Avisar(sess, categoria, m)
	}
	if err := sess.Save(); err != nil {
		return err
	}
	return c.Redirect(destino)
}
