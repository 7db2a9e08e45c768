// Package conta implements the conta convênio repository over GORM/Postgres.
package conta

import (
	"context"
	"errors"
	"time"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	repo "github.com/wbsantos/abertura-contas/pkg/repository/conta"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a conta convênio repository bound to the given GORM session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// contaRow is the scan target of the joined listing query.
type contaRow struct {
	IDContaConvenio uint
	NumConta        string
	DvConta         string
	DtAbertura      time.Time
	IDRemessa       uint
	IDAgencia       uint
	NumProcesso     string
	NomeProponente  string
	NomeAgencia     string
	BancoNome       string
}

const contaSelect = `conta_convenio.id_conta_convenio, conta_convenio.num_conta,
conta_convenio.dv_conta, conta_convenio.dt_abertura, conta_convenio.id_remessa,
conta_convenio.id_agencia, remessa.num_processo, remessa.nome_proponente,
agencia.nome_agencia, banco.nome AS banco_nome`

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("conta_convenio").
		Joins("LEFT JOIN remessa ON remessa.id_remessa = conta_convenio.id_remessa").
		Joins("LEFT JOIN agencia ON agencia.id_agencia = conta_convenio.id_agencia").
		Joins("LEFT JOIN banco ON banco.id_banco = agencia.id_banco")
}

func (r *repository) Create(ctx context.Context, create *dto.ContaCreate) error {
	c := &ContaConvenio{
		NumConta:   create.NumConta,
		DvConta:    create.DvConta,
		DtAbertura: create.DtAbertura,
		IDRemessa:  create.IDRemessa,
		IDAgencia:  create.IDAgencia,
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) Update(ctx context.Context, id uint, cu *dto.ContaUpdate) error {
	updates := make(map[string]any)
	if cu.NumConta != nil {
		updates["num_conta"] = *cu.NumConta
	}
	if cu.DvConta != nil {
		updates["dv_conta"] = *cu.DvConta
	}
	if cu.DtAbertura != nil {
		updates["dt_abertura"] = *cu.DtAbertura
	}
	if cu.IDRemessa != nil {
		updates["id_remessa"] = *cu.IDRemessa
	}
	if cu.IDAgencia != nil {
		updates["id_agencia"] = *cu.IDAgencia
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&ContaConvenio{}).
		Where("id_conta_convenio = ?", id).
		Updates(updates).Error
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.ContaRead, error) {
	var row contaRow
	err := r.joined(ctx).Select(contaSelect).
		Where("conta_convenio.id_conta_convenio = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapRowToDTO(&row), nil
}

func (r *repository) List(ctx context.Context, p list.Params) (*list.Page[dto.ContaRead], error) {
	query := func() *gorm.DB {
		q := r.joined(ctx)
		if p.Busca != "" {
			q = q.Where("conta_convenio.num_conta ILIKE ?", "%"+p.Busca+"%")
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []contaRow
	if err := query().Select(contaSelect).
		Order("conta_convenio.dt_abertura DESC, conta_convenio.id_conta_convenio DESC").
		Limit(p.PageSize).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]dto.ContaRead, 0, len(rows))
	for i := range rows {
		items = append(items, *mapRowToDTO(&rows[i]))
	}
	return &list.Page[dto.ContaRead]{
		Items:    items,
		Total:    total,
		Page:     max(p.Page, 1),
		PageSize: p.PageSize,
	}, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&ContaConvenio{}, "id_conta_convenio = ?", id)
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
	err := r.db.WithContext(ctx).Model(&ContaConvenio{}).Count(&count).Error
	return count, err
}

func (r *repository) CountByAgencia(ctx context.Context, idAgencia uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ContaConvenio{}).
		Where("id_agencia = ?", idAgencia).
		Count(&count).Error
	return count, err
}

func (r *repository) CountByRemessa(ctx context.Context, idRemessa uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ContaConvenio{}).
		Where("id_remessa = ?", idRemessa).
		Count(&count).Error
	return count, err
}

func mapRowToDTO(row *contaRow) *dto.ContaRead {
	return &dto.ContaRead{
		ID:             row.IDContaConvenio,
		NumConta:       row.NumConta,
		DvConta:        row.DvConta,
		DtAbertura:     row.DtAbertura,
		IDRemessa:      row.IDRemessa,
		IDAgencia:      row.IDAgencia,
		NumProcesso:    row.NumProcesso,
		NomeProponente: row.NomeProponente,
		NomeAgencia:    row.NomeAgencia,
		BancoNome:      row.BancoNome,
	}
}
