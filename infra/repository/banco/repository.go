// Package banco implements the banco repository over GORM/Postgres.
package banco

import (
	"context"
	"errors"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	repo "github.com/wbsantos/abertura-contas/pkg/repository/banco"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a banco repository bound to the given GORM session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.BancoCreate) error {
	return r.db.WithContext(ctx).Create(&Banco{Nome: create.Nome}).Error
}

func (r *repository) Update(ctx context.Context, id uint, bu *dto.BancoUpdate) error {
	if bu.Nome == nil {
		return nil
	}
	return r.db.WithContext(ctx).Model(&Banco{}).
		Where("id_banco = ?", id).
		Update("nome", *bu.Nome).Error
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.BancoRead, error) {
	var b Banco
	if err := r.db.WithContext(ctx).First(&b, "id_banco = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dto.BancoRead{ID: b.ID, Nome: b.Nome}, nil
}

func (r *repository) List(ctx context.Context, p list.Params) (*list.Page[dto.BancoRead], error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&Banco{})
		if p.Busca != "" {
			q = q.Where("nome ILIKE ?", "%"+p.Busca+"%")
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	var modelos []Banco
	if err := query().Order("nome").
		Limit(p.PageSize).Offset(p.Offset()).
		Find(&modelos).Error; err != nil {
		return nil, err
	}

	items := make([]dto.BancoRead, 0, len(modelos))
	for _, b := range modelos {
		items = append(items, dto.BancoRead{ID: b.ID, Nome: b.Nome})
	}
	return &list.Page[dto.BancoRead]{
		Items:    items,
		Total:    total,
		Page:     max(p.Page, 1),
		PageSize: p.PageSize,
	}, nil
}

func (r *repository) All(ctx context.Context) ([]dto.BancoRead, error) {
	var modelos []Banco
	if err := r.db.WithContext(ctx).Order("nome").Find(&modelos).Error; err != nil {
		return nil, err
	}
	items := make([]dto.BancoRead, 0, len(modelos))
	for _, b := range modelos {
		items = append(items, dto.BancoRead{ID: b.ID, Nome: b.Nome})
	}
	return items, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Banco{}, "id_banco = ?", id)
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
	err := r.db.WithContext(ctx).Model(&Banco{}).Count(&count).Error
	return count, err
}
