// Package usuario implements the usuário repository over GORM/Postgres.
package usuario

import (
	"context"
	"errors"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	repo "github.com/wbsantos/abertura-contas/pkg/repository/usuario"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a usuário repository bound to the given GORM session.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, create *dto.UsuarioCreate) error {
	u := &Usuario{
		Nome:        create.Nome,
		Matricula:   create.Matricula,
		Email:       create.Email,
		Instituicao: create.Instituicao,
		Login:       create.Login,
		Senha:       create.Senha,
		Perfil:      string(create.Perfil),
		Status:      string(create.Status),
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicado
		}
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id uint, uu *dto.UsuarioUpdate) error {
	updates := make(map[string]any)
	if uu.Nome != nil {
		updates["nome"] = *uu.Nome
	}
	if uu.Matricula != nil {
		updates["matricula"] = *uu.Matricula
	}
	if uu.Email != nil {
		updates["email"] = *uu.Email
	}
	if uu.Instituicao != nil {
		updates["instituicao"] = *uu.Instituicao
	}
	if uu.Login != nil {
		updates["login"] = *uu.Login
	}
	if uu.Senha != nil {
		updates["senha"] = *uu.Senha
	}
	if uu.Perfil != nil {
		updates["perfil"] = string(*uu.Perfil)
	}
	if uu.Status != nil {
		updates["status"] = string(*uu.Status)
	}
	if len(updates) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&Usuario{}).
		Where("id_usuario = ?", id).
		Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicado
	}
	return err
}

func (r *repository) Get(ctx context.Context, id uint) (*dto.UsuarioRead, error) {
	var u Usuario
	if err := r.db.WithContext(ctx).First(&u, "id_usuario = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByLogin(ctx context.Context, login string) (*dto.UsuarioRead, error) {
	var u Usuario
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*dto.UsuarioRead, error) {
	var u Usuario
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repository) List(ctx context.Context, p list.Params) (*list.Page[dto.UsuarioRead], error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&Usuario{})
		if p.Busca != "" {
			padrao := "%" + p.Busca + "%"
			q = q.Where("nome ILIKE ? OR login ILIKE ?", padrao, padrao)
		}
		if p.Filtro != "" {
			q = q.Where("perfil = ?", p.Filtro)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, err
	}

	var modelos []Usuario
	if err := query().Order("nome").
		Limit(p.PageSize).Offset(p.Offset()).
		Find(&modelos).Error; err != nil {
		return nil, err
	}

	items := make([]dto.UsuarioRead, 0, len(modelos))
	for i := range modelos {
		u := mapModelToDTO(&modelos[i])
		u.SenhaHash = ""
		items = append(items, *u)
	}
	return &list.Page[dto.UsuarioRead]{
		Items:    items,
		Total:    total,
		Page:     max(p.Page, 1),
		PageSize: p.PageSize,
	}, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Usuario{}, "id_usuario = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNaoEncontrado
	}
	return nil
}

func (r *repository) CountConflitos(ctx context.Context, login, email, matricula string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Usuario{}).
		Where("login = ? OR email = ? OR matricula = ?", login, email, matricula).
		Count(&count).Error
	return count, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Usuario{}).Count(&count).Error
	return count, err
}

func mapModelToDTO(u *Usuario) *dto.UsuarioRead {
	return &dto.UsuarioRead{
		ID:          u.ID,
		Nome:        u.Nome,
		Matricula:   u.Matricula,
		Email:       u.Email,
		Instituicao: u.Instituicao,
		Login:       u.Login,
		SenhaHash:   u.Senha,
		Perfil:      domain.Perfil(u.Perfil),
		Status:      domain.StatusUsuario(u.Status),
	}
}
