package painel_test

import (
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/webapi/testutils"
)

func TestDashboard(t *testing.T) {
	app, store := testutils.NewTestApp(t)
	testutils.SeedUsuario(t, store, "maria", "senha", domain.PerfilOperador)
	store.Bancos[1] = dto.BancoRead{ID: 1, Nome: "Banco do Brasil"}
	store.Remessas[2] = dto.RemessaRead{ID: 2, NumProcesso: "2026/001", Situacao: domain.SituacaoEnviado, NumRemessa: 1}
	cookie := testutils.Login(t, app, "maria", "senha")

	resp := testutils.Get(t, app, "/dashboard", cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "Painel")
	// Every situação row is rendered, the empty ones included.
	for _, s := range domain.Situacoes() {
		assert.Contains(t, html, s.Label())
	}
}
