// Package agencia implements the agência repository over GORM/Postgres.
package agencia

import (
	"context"
	"errors"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	repo "github.com/wbsantos/abertura-contas/pkg/repository/agencia"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns an agência repository bound to the given GORM session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// agenciaRow is the scan target of the joined listing query.
type agenciaRow struct {
	IDAgencia   uint
	NomeAgencia string
	NumAgencia  int
	DvAgencia   string
	Logadouro   string
	Cidade      string
	UF          string
	IDBanco     uint
	BancoNome   string
}

const agenciaSelect = `agencia.id_agencia, agencia.nome_agencia, agencia.num_agencia,
agencia.dv_agencia, agencia.logadouro, agencia.cidade, agencia.uf, agencia.id_banco,
banco.nome AS banco_nome`

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("agencia").
		Joins("LEFT JOIN banco ON banco.id_banco = agencia.id_banco")
}

func (r *repository) Create(ctx context.Context, create *dto.AgenciaCreate) error {
	a := &Agencia{
		NomeAgencia: create.NomeAgencia,
		NumAgencia:  create.NumAgencia,
		DvAgencia:   create.DvAgencia,
		Logadouro:   create.Logadouro,
		Cidade:      create.Cidade,
		UF:          create.UF,
		IDBanco:     create.IDBanco,
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, id uint, au *dto.AgenciaUpdate) error {
	updates := make(map[string]any)
	if au.NomeAgencia != nil {
		updates["nome_agencia"] = *au.NomeAgencia
	}
	if au.NumAgencia != nil {
		updates["num_agencia"] = *au.NumAgencia
	}
	if au.DvAgencia != nil {
		updates["dv_agencia"] = *au.DvAgencia
	}
	if au.Logadouro != nil {
		updates["logadouro"] = *au.Logadouro
	}
	if au.Cidade != nil {
		updates["cidade"] = *au.Cidade
	}
	if au.UF != nil {
		updates["uf"] = *au.UF
	}
	if au.IDBanco != nil {
		updates["id_banco"] = *au.IDBanco
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Agencia{}).
		Where("id_agencia = ?", id).
		Updates(updates).Error
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.AgenciaRead, error) {
	var row agenciaRow
	err := r.joined(ctx).Select(agenciaSelect).
		Where("agencia.id_agencia = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapRowToDTO(&row), nil
}

func (r *repository) List(ctx context.Context, p list.Params) (*list.Page[dto.AgenciaRead], error) {
	query := func() *gorm.DB {
		q := r.joined(ctx)
		if p.Busca != "" {
			padrao := "%" + p.Busca + "%"
			q = q.Where("agencia.nome_agencia ILIKE ? OR agencia.cidade ILIKE ?", padrao, padrao)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []agenciaRow
	if err := query().Select(agenciaSelect).
		Order("agencia.nome_agencia").
		Limit(p.PageSize).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]dto.AgenciaRead, 0, len(rows))
	for i := range rows {
		items = append(items, *mapRowToDTO(&rows[i]))
	}
	return &list.Page[dto.AgenciaRead]{
		Items:    items,
		Total:    total,
		Page:     max(p.Page, 1),
		PageSize: p.PageSize,
	}, nil
}

func (r *repository) All(ctx context.Context) ([]dto.AgenciaRead, error) {
	var rows []agenciaRow
	if err := r.joined(ctx).Select(agenciaSelect).
		Order("agencia.nome_agencia").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]dto.AgenciaRead, 0, len(rows))
	for i := range rows {
		items = append(items, *mapRowToDTO(&rows[i]))
	}
	return items, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Agencia{}, "id_agencia = ?", id)
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
	err := r.db.WithContext(ctx).Model(&Agencia{}).Count(&count).Error
	return count, err
}

func (r *repository) CountByBanco(ctx context.Context, idBanco uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Agencia{}).
		Where("id_banco = ?", idBanco).
		Count(&count).Error
	return count, err
}

func mapRowToDTO(row *agenciaRow) *dto.AgenciaRead {
	return &dto.AgenciaRead{
		ID:          row.IDAgencia,
		NomeAgencia: row.NomeAgencia,
		NumAgencia:  row.NumAgencia,
		DvAgencia:   row.DvAgencia,
		Logadouro:   row.Logadouro,
		Cidade:      row.Cidade,
		UF:          row.UF,
		IDBanco:     row.IDBanco,
		BancoNome:   row.BancoNome,
	}
}
