// Package remessa implements the remessa repository over GORM/Postgres.
package remessa

import (
	"context"
	"errors"
	"time"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	repo "github.com/wbsantos/abertura-contas/pkg/repository/remessa"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a remessa repository bound to the given GORM session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// remessaRow is the scan target of the joined listing query.
type remessaRow struct {
	IDRemessa      uint
	NumProcesso    string
	NomeProponente string
	CpfCnpj        string
	NumConvenio    string
	Situacao       string
	DtRemessa      time.Time
	NumRemessa     int
	IDConcedente   uint
	IDUsuario      uint
	IDBanco        *uint
	ConcedenteNome string
	UsuarioNome    string
	BancoNome      string
}

const remessaSelect = `remessa.id_remessa, remessa.num_processo, remessa.nome_proponente,
remessa.cpf_cnpj, remessa.num_convenio, remessa.situacao, remessa.dt_remessa,
remessa.num_remessa, remessa.id_concedente, remessa.id_usuario, remessa.id_banco,
concedente.nome AS concedente_nome, usuario.nome AS usuario_nome, banco.nome AS banco_nome`

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("remessa").
		Joins("LEFT JOIN concedente ON concedente.id_concedente = remessa.id_concedente").
		Joins("LEFT JOIN usuario ON usuario.id_usuario = remessa.id_usuario").
		Joins("LEFT JOIN banco ON banco.id_banco = remessa.id_banco")
}

func (r *repository) Create(ctx context.Context, create *dto.RemessaCreate) error {
	m := &Remessa{
		NumProcesso:    create.NumProcesso,
		NomeProponente: create.NomeProponente,
		CpfCnpj:        create.CpfCnpj,
		NumConvenio:    create.NumConvenio,
		Situacao:       string(create.Situacao),
		DtRemessa:      create.DtRemessa,
		NumRemessa:     create.NumRemessa,
		IDConcedente:   create.IDConcedente,
		IDUsuario:      create.IDUsuario,
		IDBanco:        create.IDBanco,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicado
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id uint, ru *dto.RemessaUpdate) error {
	updates := make(map[string]any)
	if ru.NumProcesso != nil {
		updates["num_processo"] = *ru.NumProcesso
	}
	if ru.NomeProponente != nil {
		updates["nome_proponente"] = *ru.NomeProponente
	}
	if ru.CpfCnpj != nil {
		updates["cpf_cnpj"] = *ru.CpfCnpj
	}
	if ru.NumConvenio != nil {
		updates["num_convenio"] = *ru.NumConvenio
	}
	if ru.Situacao != nil {
		updates["situacao"] = string(*ru.Situacao)
	}
	if ru.IDConcedente != nil {
		updates["id_concedente"] = *ru.IDConcedente
	}
	if ru.LimparBanco {
		updates["id_banco"] = nil
	} else if ru.IDBanco != nil {
		updates["id_banco"] = *ru.IDBanco
	}
	if len(updates) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&Remessa{}).
		Where("id_remessa = ?", id).
		Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicado
	}
	return err
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.RemessaRead, error) {
	var row remessaRow
	err := r.joined(ctx).Select(remessaSelect).
		Where("remessa.id_remessa = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapRowToDTO(&row), nil
}

func (r *repository) List(ctx context.Context, p list.Params) (*list.Page[dto.RemessaRead], error) {
	query := func() *gorm.DB {
		q := r.joined(ctx)
		if p.Busca != "" {
			padrao := "%" + p.Busca + "%"
			q = q.Where("remessa.num_processo ILIKE ? OR remessa.nome_proponente ILIKE ?", padrao, padrao)
		}
		if p.Filtro != "" {
			q = q.Where("remessa.situacao = ?", p.Filtro)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []remessaRow
	if err := query().Select(remessaSelect).
		Order("remessa.dt_remessa DESC, remessa.id_remessa DESC").
		Limit(p.PageSize).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]dto.RemessaRead, 0, len(rows))
	for i := range rows {
		items = append(items, *mapRowToDTO(&rows[i]))
	}
	return &list.Page[dto.RemessaRead]{
		Items:    items,
		Total:    total,
		Page:     max(p.Page, 1),
		PageSize: p.PageSize,
	}, nil
}

func (r *repository) All(ctx context.Context) ([]dto.RemessaRead, error) {
	var rows []remessaRow
	if err := r.joined(ctx).Select(remessaSelect).
		Order("remessa.num_processo").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]dto.RemessaRead, 0, len(rows))
	for i := range rows {
		items = append(items, *mapRowToDTO(&rows[i]))
	}
	return items, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Remessa{}, "id_remessa = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Remessa{}).Count(&count).Error
	return count, err
}

func (r *repository) ProximoNumero(ctx context.Context) (int, error) {
	var proximo int
	err := r.db.WithContext(ctx).Model(&Remessa{}).
		Select("COALESCE(MAX(num_remessa), 0) + 1").
		Scan(&proximo).Error
	return proximo, err
}

func (r *repository) AtualizarSituacao(ctx context.Context, id uint, s domain.Situacao) error {
	res := r.db.WithContext(ctx).Model(&Remessa{}).
		Where("id_remessa = ?", id).
		Update("situacao", string(s))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

func (r *repository) CountPorSituacao(ctx context.Context) (map[domain.Situacao]int64, error) {
	var rows []struct {
		Situacao string
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&Remessa{}).
		Select("situacao, COUNT(*) AS total").
		Group("situacao").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	porSituacao := make(map[domain.Situacao]int64, len(rows))
	for _, row := range rows {
		porSituacao[domain.Situacao(row.Situacao)] = row.Total
	}
	return porSituacao, nil
}

func (r *repository) CountByBanco(ctx context.Context, idBanco uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Remessa{}).
		Where("id_banco = ?", idBanco).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByConcedente(ctx context.Context, idConcedente uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Remessa{}).
		Where("id_concedente = ?", idConcedente).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByUsuario(ctx context.Context, idUsuario uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Remessa{}).
		Where("id_usuario = ?", idUsuario).
		Count(&count).Error
	return count, err
}

func mapRowToDTO(row *remessaRow) *dto.RemessaRead {
	return &dto.RemessaRead{
		ID:             row.IDRemessa,
		NumProcesso:    row.NumProcesso,
		NomeProponente: row.NomeProponente,
		CpfCnpj:        row.CpfCnpj,
		NumConvenio:    row.NumConvenio,
		Situacao:       domain.Situacao(row.Situacao),
		DtRemessa:      row.DtRemessa,
		NumRemessa:     row.NumRemessa,
		IDConcedente:   row.IDConcedente,
		IDUsuario:      row.IDUsuario,
		IDBanco:        row.IDBanco,
		ConcedenteNome: row.ConcedenteNome,
		UsuarioNome:    row.UsuarioNome,
		BancoNome:      row.BancoNome,
	}
}
