// Package concedente implements the concedente repository over GORM/Postgres.
package concedente

import (
	"context"
	"errors"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	repo "github.com/wbsantos/abertura-contas/pkg/repository/concedente"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a concedente repository bound to the given GORM session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.ConcedenteCreate) error {
	c := &Concedente{
		CodigoSecretaria: create.CodigoSecretaria,
		Sigla:            create.Sigla,
		Nome:             create.Nome,
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicado
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id uint, cu *dto.ConcedenteUpdate) error {
	updates := make(map[string]any)
	if cu.CodigoSecretaria != nil {
		updates["codigo_secretaria"] = *cu.CodigoSecretaria
	}
	if cu.Sigla != nil {
		updates["sigla"] = *cu.Sigla
	}
	if cu.Nome != nil {
		updates["nome"] = *cu.Nome
	}
	if len(updates) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&Concedente{}).
		Where("id_concedente = ?", id).
		Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicado
	}
	return err
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.ConcedenteRead, error) {
	var c Concedente
	if err := r.db.WithContext(ctx).First(&c, "id_concedente = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&c), nil
}

func (r *repository) List(ctx context.Context, p list.Params) (*list.Page[dto.ConcedenteRead], error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&Concedente{})
		if p.Busca != "" {
			padrao := "%" + p.Busca + "%"
			q = q.Where("nome ILIKE ? OR sigla ILIKE ?", padrao, padrao)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	var modelos []Concedente
	if err := query().Order("nome").
		Limit(p.PageSize).Offset(p.Offset()).
		Find(&modelos).Error; err != nil {
		return nil, err
	}

	items := make([]dto.ConcedenteRead, 0, len(modelos))
	for i := range modelos {
		items = append(items, *mapModelToDTO(&modelos[i]))
	}
	return &list.Page[dto.ConcedenteRead]{
		Items:    items,
		Total:    total,
		Page:     max(p.Page, 1),
		PageSize: p.PageSize,
	}, nil
}

func (r *repository) All(ctx context.Context) ([]dto.ConcedenteRead, error) {
	var modelos []Concedente
	if err := r.db.WithContext(ctx).Order("nome").Find(&modelos).Error; err != nil {
		return nil, err
	}
	items := make([]dto.ConcedenteRead, 0, len(modelos))
	for i := range modelos {
		items = append(items, *mapModelToDTO(&modelos[i]))
	}
	return items, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Concedente{}, "id_concedente = ?", id)
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
	err := r.db.WithContext(ctx).Model(&Concedente{}).Count(&count).Error
	return count, err
}

func mapModelToDTO(c *Concedente) *dto.ConcedenteRead {
	return &dto.ConcedenteRead{
		ID:               c.ID,
		CodigoSecretaria: c.CodigoSecretaria,
		Sigla:            c.Sigla,
		Nome:             c.Nome,
	}
}
