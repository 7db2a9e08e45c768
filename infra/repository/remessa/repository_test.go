package remessa

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
)

// openMockDB mirrors the production session config so statement shapes
// match: no implicit transaction around single writes, driver errors
// translated to gorm sentinels.
func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestRepository_Create(t *testing.T) {
	db, mock := openMockDB(t)
	r := New(db)

	mock.ExpectQuery(`INSERT INTO "remessa" (.+) RETURNING "id_remessa"`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id_remessa"}).AddRow(1))

	err := r.Create(context.Background(), &dto.RemessaCreate{
		NumProcesso:    "2026/001",
		NomeProponente: "Prefeitura de Petrolina",
		CpfCnpj:        "10.358.190/0001-77",
		NumConvenio:    "CV-2026-0012",
		Situacao:       domain.SituacaoEmPreparacao,
		DtRemessa:      time.Now(),
		NumRemessa:     1,
		IDConcedente:   1,
		IDUsuario:      7,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Duplicate(t *testing.T) {
	db, mock := openMockDB(t)
	r := New(db)

	mock.ExpectQuery(`INSERT INTO "remessa" (.+) RETURNING "id_remessa"`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(gorm.ErrDuplicatedKey)

	err := r.Create(context.Background(), &dto.RemessaCreate{NumProcesso: "2026/001"})
	assert.ErrorIs(t, err, domain.ErrDuplicado)
}

func remessaColunas() []string {
	return []string{"id_remessa", "num_processo", "nome_proponente", "cpf_cnpj",
		"num_convenio", "situacao", "dt_remessa", "num_remessa", "id_concedente",
		"id_usuario", "id_banco", "concedente_nome", "usuario_nome", "banco_nome"}
}

func TestRepository_Get_Missing(t *testing.T) {
	db, mock := openMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT (.+) FROM "remessa" LEFT JOIN concedente (.+) WHERE remessa.id_remessa = (.+)`).
		WillReturnRows(sqlmock.NewRows(remessaColunas()))

	got, err := r.Get(context.Background(), 42)
	require.NoError(t, err, "a missing row is not an error")
	assert.Nil(t, got)
}

func TestRepository_List_Joined(t *testing.T) {
	db, mock := openMockDB(t)
	r := New(db)

	padrao := "%petr%"
	mock.ExpectQuery(`SELECT count\(\*\) FROM "remessa" LEFT JOIN concedente (.+) LEFT JOIN usuario (.+) LEFT JOIN banco (.+) WHERE (.+)ILIKE(.+)`).
		WithArgs(padrao, padrao).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	rows := sqlmock.NewRows(remessaColunas()).
		AddRow(10, "2026/002", "Petrolina", "10.358.190/0001-77", "CV-2026-0013",
			"ENVIADO", time.Now(), 2, 1, 7, 2, "Secretaria da Fazenda", "Maria", "Banco do Brasil").
		AddRow(9, "2026/001", "Petrolândia", "11.049.823/0001-10", "CV-2026-0012",
			"EM_PREPARACAO", time.Now(), 1, 1, 7, nil, "Secretaria da Fazenda", "Maria", "")
	mock.ExpectQuery(`SELECT remessa.id_remessa, (.+) FROM "remessa" LEFT JOIN concedente (.+) WHERE (.+)ILIKE(.+) ORDER BY remessa.dt_remessa DESC, remessa.id_remessa DESC LIMIT (.+) OFFSET (.+)`).
		WithArgs(padrao, padrao, 10, 10).
		WillReturnRows(rows)

	pagina, err := r.List(context.Background(), list.Params{Busca: "petr", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 11, pagina.Total)
	require.Len(t, pagina.Items, 2)
	assert.Equal(t, "Banco do Brasil", pagina.Items[0].BancoNome)
	assert.Equal(t, domain.SituacaoEnviado, pagina.Items[0].Situacao)
	assert.Nil(t, pagina.Items[1].IDBanco, "a remessa without banco scans to a nil pointer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ProximoNumero(t *testing.T) {
	db, mock := openMockDB(t)
	r := New(db)

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(num_remessa\), 0\) \+ 1 FROM "remessa"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4))

	proximo, err := r.ProximoNumero(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, proximo)
}

func TestRepository_Update_LimparBanco(t *testing.T) {
	db, mock := openMockDB(t)
	r := New(db)

	mock.ExpectExec(`UPDATE "remessa" SET "id_banco"=(.+) WHERE id_remessa = (.+)`).
		WithArgs(nil, 10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := r.Update(context.Background(), 10, &dto.RemessaUpdate{LimparBanco: true})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_AtualizarSituacao(t *testing.T) {
	db, mock := openMockDB(t)
	r := New(db)

	mock.ExpectExec(`UPDATE "remessa" SET "situacao"=(.+) WHERE id_remessa = (.+)`).
		WithArgs("CONTA_ABERTA", 10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, r.AtualizarSituacao(context.Background(), 10, domain.SituacaoContaAberta))

	mock.ExpectExec(`UPDATE "remessa" SET "situacao"=(.+) WHERE id_remessa = (.+)`).
		WithArgs("CONTA_ABERTA", 42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, r.AtualizarSituacao(context.Background(), 42, domain.SituacaoContaAberta), domain.ErrNaoEncontrado)
}
