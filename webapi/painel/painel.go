// Package painel serves the dashboard.
package painel

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/wbsantos/abertura-contas/pkg/domain"
	painelsvc "github.com/wbsantos/abertura-contas/pkg/service/painel"
	"github.com/wbsantos/abertura-contas/webapi/common"
)

// Routes registers the dashboard route behind the login gate.
func Routes(app *fiber.App, store *session.Store, gate fiber.Handler, painelSvc *painelsvc.Service) {
	app.Get("/dashboard", gate, Dashboard(store, painelSvc))
}

// situacaoLinha is a display row of the per-situação table, in workflow
// order.
type situacaoLinha struct {
	Situacao domain.Situacao
	Label    string
	Total    int64
}

// Dashboard renders the entity totals and the remessa counts per situação.
func Dashboard(store *session.Store, painelSvc *painelsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resumo, err := painelSvc.Resumo(c.Context())
		if err != nil {
			return common.FlashRedirect(c, store, "danger", "Erro ao carregar o painel.", "/login")
		}
		linhas := make([]situacaoLinha, 0, len(domain.Situacoes()))
		for _, s := range domain.Situacoes() {
			linhas = append(linhas, situacaoLinha{Situacao: s, Label: s.Label(), Total: resumo.PorSituacao[s]})
		}
		return common.Render(c, store, "dashboard", fiber.Map{
			"Titulo":      "Painel",
			"Resumo":      resumo,
			"PorSituacao": linhas,
		})
	}
}
