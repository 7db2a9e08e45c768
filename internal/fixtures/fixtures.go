// Package fixtures provides an in-memory repository.UnitOfWork for
// service and handler tests. The fakes honor the repository contracts:
// (nil, nil) on missing rows, domain.ErrNaoEncontrado on deletes that
// affect nothing, domain.ErrDuplicado on unique-column conflicts, and
// search/filter/paging semantics matching the SQL implementations.
package fixtures

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/wbsantos/abertura-contas/pkg/domain"
	"github.com/wbsantos/abertura-contas/pkg/dto"
	"github.com/wbsantos/abertura-contas/pkg/repository"
	"github.com/wbsantos/abertura-contas/pkg/repository/agencia"
	"github.com/wbsantos/abertura-contas/pkg/repository/banco"
	"github.com/wbsantos/abertura-contas/pkg/repository/concedente"
	"github.com/wbsantos/abertura-contas/pkg/repository/conta"
	"github.com/wbsantos/abertura-contas/pkg/repository/list"
	"github.com/wbsantos/abertura-contas/pkg/repository/remessa"
	"github.com/wbsantos/abertura-contas/pkg/repository/usuario"
)

// Store is the shared in-memory state behind a fake unit of work.
type Store struct {
	mu          sync.Mutex
	seq         uint
	Usuarios    map[uint]dto.UsuarioRead
	Bancos      map[uint]dto.BancoRead
	Agencias    map[uint]dto.AgenciaRead
	Concedentes map[uint]dto.ConcedenteRead
	Remessas    map[uint]dto.RemessaRead
	Contas      map[uint]dto.ContaRead

	// FailWith, when set, is returned by every subsequent operation.
	FailWith error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		Usuarios:    map[uint]dto.UsuarioRead{},
		Bancos:      map[uint]dto.BancoRead{},
		Agencias:    map[uint]dto.AgenciaRead{},
		Concedentes: map[uint]dto.ConcedenteRead{},
		Remessas:    map[uint]dto.RemessaRead{},
		Contas:      map[uint]dto.ContaRead{},
	}
}

func (s *Store) nextID() uint {
	s.seq++
	return s.seq
}

// NewUoW wraps the store in a repository.UnitOfWork.
func NewUoW(store *Store) repository.UnitOfWork {
	return &fakeUoW{store: store}
}

type fakeUoW struct {
	store *Store
}

// Do runs fn against the same store. The fakes have no transactional
// rollback; tests assert on the error paths before mutation instead.
func (u *fakeUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

func (u *fakeUoW) Usuarios() usuario.Repository       { return &usuarioRepo{u.store} }
func (u *fakeUoW) Bancos() banco.Repository           { return &bancoRepo{u.store} }
func (u *fakeUoW) Agencias() agencia.Repository       { return &agenciaRepo{u.store} }
func (u *fakeUoW) Concedentes() concedente.Repository { return &concedenteRepo{u.store} }
func (u *fakeUoW) Remessas() remessa.Repository       { return &remessaRepo{u.store} }
func (u *fakeUoW) Contas() conta.Repository           { return &contaRepo{u.store} }

func contem(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func paginar[T any](items []T, p list.Params) *list.Page[T] {
	total := int64(len(items))
	page := p.Page
	if page < 1 {
		page = 1
	}
	start := p.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + p.PageSize
	if p.PageSize <= 0 || end > len(items) {
		end = len(items)
	}
	return &list.Page[T]{Items: items[start:end], Total: total, Page: page, PageSize: p.PageSize}
}

// --- usuários ---

type usuarioRepo struct{ s *Store }

func (r *usuarioRepo) Create(ctx context.Context, create *dto.UsuarioCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	for _, u := range r.s.Usuarios {
		if u.Login == create.Login || u.Email == create.Email || u.Matricula == create.Matricula {
			return domain.ErrDuplicado
		}
	}
	id := r.s.nextID()
	r.s.Usuarios[id] = dto.UsuarioRead{
		ID:          id,
		Nome:        create.Nome,
		Matricula:   create.Matricula,
		Email:       create.Email,
		Instituicao: create.Instituicao,
		Login:       create.Login,
		SenhaHash:   create.Senha,
		Perfil:      create.Perfil,
		Status:      create.Status,
	}
	return nil
}

func (r *usuarioRepo) Update(ctx context.Context, id uint, update *dto.UsuarioUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	u, ok := r.s.Usuarios[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	if update.Nome != nil {
		u.Nome = *update.Nome
	}
	if update.Matricula != nil {
		u.Matricula = *update.Matricula
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Instituicao != nil {
		u.Instituicao = *update.Instituicao
	}
	if update.Login != nil {
		u.Login = *update.Login
	}
	if update.Senha != nil {
		u.SenhaHash = *update.Senha
	}
	if update.Perfil != nil {
		u.Perfil = *update.Perfil
	}
	if update.Status != nil {
		u.Status = *update.Status
	}
	r.s.Usuarios[id] = u
	return nil
}

func (r *usuarioRepo) Get(ctx context.Context, id uint) (*dto.UsuarioRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	u, ok := r.s.Usuarios[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *usuarioRepo) GetByLogin(ctx context.Context, login string) (*dto.UsuarioRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	for _, u := range r.s.Usuarios {
		if u.Login == login {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *usuarioRepo) GetByEmail(ctx context.Context, email string) (*dto.UsuarioRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	for _, u := range r.s.Usuarios {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *usuarioRepo) List(ctx context.Context, p list.Params) (*list.Page[dto.UsuarioRead], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	var rows []dto.UsuarioRead
	for _, u := range r.s.Usuarios {
		if p.Filtro != "" && string(u.Perfil) != p.Filtro {
			continue
		}
		if contem(u.Nome, p.Busca) || contem(u.Login, p.Busca) {
			u.SenhaHash = ""
			rows = append(rows, u)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Nome < rows[j].Nome })
	return paginar(rows, p), nil
}

func (r *usuarioRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	if _, ok := r.s.Usuarios[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.s.Usuarios, id)
	return nil
}

func (r *usuarioRepo) CountConflitos(ctx context.Context, login, email, matricula string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var n int64
	for _, u := range r.s.Usuarios {
		if u.Login == login || u.Email == email || u.Matricula == matricula {
			n++
		}
	}
	return n, nil
}

func (r *usuarioRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.Usuarios)), r.s.FailWith
}

// --- bancos ---

type bancoRepo struct{ s *Store }

func (r *bancoRepo) Create(ctx context.Context, create *dto.BancoCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	id := r.s.nextID()
	r.s.Bancos[id] = dto.BancoRead{ID: id, Nome: create.Nome}
	return nil
}

func (r *bancoRepo) Update(ctx context.Context, id uint, update *dto.BancoUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	b, ok := r.s.Bancos[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	if update.Nome != nil {
		b.Nome = *update.Nome
	}
	r.s.Bancos[id] = b
	return nil
}

func (r *bancoRepo) Get(ctx context.Context, id uint) (*dto.BancoRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	b, ok := r.s.Bancos[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *bancoRepo) List(ctx context.Context, p list.Params) (*list.Page[dto.BancoRead], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	var rows []dto.BancoRead
	for _, b := range r.s.Bancos {
		if contem(b.Nome, p.Busca) {
			rows = append(rows, b)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Nome < rows[j].Nome })
	return paginar(rows, p), nil
}

func (r *bancoRepo) All(ctx context.Context) ([]dto.BancoRead, error) {
	page, err := r.List(ctx, list.Params{Page: 1, PageSize: len(r.s.Bancos)})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (r *bancoRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	if _, ok := r.s.Bancos[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.s.Bancos, id)
	return nil
}

func (r *bancoRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.Bancos)), r.s.FailWith
}

// --- agências ---

type agenciaRepo struct{ s *Store }

func (r *agenciaRepo) Create(ctx context.Context, create *dto.AgenciaCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	id := r.s.nextID()
	r.s.Agencias[id] = dto.AgenciaRead{
		ID:          id,
		NomeAgencia: create.NomeAgencia,
		NumAgencia:  create.NumAgencia,
		DvAgencia:   create.DvAgencia,
		Logadouro:   create.Logadouro,
		Cidade:      create.Cidade,
		UF:          create.UF,
		IDBanco:     create.IDBanco,
		BancoNome:   r.s.Bancos[create.IDBanco].Nome,
	}
	return nil
}

func (r *agenciaRepo) Update(ctx context.Context, id uint, update *dto.AgenciaUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	a, ok := r.s.Agencias[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	if update.NomeAgencia != nil {
		a.NomeAgencia = *update.NomeAgencia
	}
	if update.NumAgencia != nil {
		a.NumAgencia = *update.NumAgencia
	}
	if update.DvAgencia != nil {
		a.DvAgencia = *update.DvAgencia
	}
	if update.Logadouro != nil {
		a.Logadouro = *update.Logadouro
	}
	if update.Cidade != nil {
		a.Cidade = *update.Cidade
	}
	if update.UF != nil {
		a.UF = *update.UF
	}
	if update.IDBanco != nil {
		a.IDBanco = *update.IDBanco
		a.BancoNome = r.s.Bancos[*update.IDBanco].Nome
	}
	r.s.Agencias[id] = a
	return nil
}

func (r *agenciaRepo) Get(ctx context.Context, id uint) (*dto.AgenciaRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	a, ok := r.s.Agencias[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *agenciaRepo) List(ctx context.Context, p list.Params) (*list.Page[dto.AgenciaRead], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	var rows []dto.AgenciaRead
	for _, a := range r.s.Agencias {
		if contem(a.NomeAgencia, p.Busca) || contem(a.Cidade, p.Busca) {
			rows = append(rows, a)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].NomeAgencia < rows[j].NomeAgencia })
	return paginar(rows, p), nil
}

func (r *agenciaRepo) All(ctx context.Context) ([]dto.AgenciaRead, error) {
	page, err := r.List(ctx, list.Params{Page: 1, PageSize: len(r.s.Agencias)})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (r *agenciaRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	if _, ok := r.s.Agencias[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.s.Agencias, id)
	return nil
}

func (r *agenciaRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.Agencias)), r.s.FailWith
}

func (r *agenciaRepo) CountByBanco(ctx context.Context, idBanco uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var n int64
	for _, a := range r.s.Agencias {
		if a.IDBanco == idBanco {
			n++
		}
	}
	return n, nil
}

// --- concedentes ---

type concedenteRepo struct{ s *Store }

func (r *concedenteRepo) Create(ctx context.Context, create *dto.ConcedenteCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	for _, c := range r.s.Concedentes {
		if c.CodigoSecretaria == create.CodigoSecretaria {
			return domain.ErrDuplicado
		}
	}
	id := r.s.nextID()
	r.s.Concedentes[id] = dto.ConcedenteRead{
		ID:               id,
		CodigoSecretaria: create.CodigoSecretaria,
		Sigla:            create.Sigla,
		Nome:             create.Nome,
	}
	return nil
}

func (r *concedenteRepo) Update(ctx context.Context, id uint, update *dto.ConcedenteUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	c, ok := r.s.Concedentes[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	if update.CodigoSecretaria != nil {
		c.CodigoSecretaria = *update.CodigoSecretaria
	}
	if update.Sigla != nil {
		c.Sigla = *update.Sigla
	}
	if update.Nome != nil {
		c.Nome = *update.Nome
	}
	r.s.Concedentes[id] = c
	return nil
}

func (r *concedenteRepo) Get(ctx context.Context, id uint) (*dto.ConcedenteRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	c, ok := r.s.Concedentes[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *concedenteRepo) List(ctx context.Context, p list.Params) (*list.Page[dto.ConcedenteRead], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	var rows []dto.ConcedenteRead
	for _, c := range r.s.Concedentes {
		if contem(c.Nome, p.Busca) || contem(c.Sigla, p.Busca) {
			rows = append(rows, c)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Nome < rows[j].Nome })
	return paginar(rows, p), nil
}

func (r *concedenteRepo) All(ctx context.Context) ([]dto.ConcedenteRead, error) {
	page, err := r.List(ctx, list.Params{Page: 1, PageSize: len(r.s.Concedentes)})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (r *concedenteRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	if _, ok := r.s.Concedentes[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.s.Concedentes, id)
	return nil
}

func (r *concedenteRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.Concedentes)), r.s.FailWith
}

// --- remessas ---

type remessaRepo struct{ s *Store }

func (r *remessaRepo) join(m dto.RemessaRead) dto.RemessaRead {
	m.ConcedenteNome = r.s.Concedentes[m.IDConcedente].Nome
	m.UsuarioNome = r.s.Usuarios[m.IDUsuario].Nome
	if m.IDBanco != nil {
		m.BancoNome = r.s.Bancos[*m.IDBanco].Nome
	}
	return m
}

func (r *remessaRepo) Create(ctx context.Context, create *dto.RemessaCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	for _, m := range r.s.Remessas {
		if m.NumProcesso == create.NumProcesso {
			return domain.ErrDuplicado
		}
	}
	id := r.s.nextID()
	r.s.Remessas[id] = dto.RemessaRead{
		ID:             id,
		NumProcesso:    create.NumProcesso,
		NomeProponente: create.NomeProponente,
		CpfCnpj:        create.CpfCnpj,
		NumConvenio:    create.NumConvenio,
		Situacao:       create.Situacao,
		DtRemessa:      create.DtRemessa,
		NumRemessa:     create.NumRemessa,
		IDConcedente:   create.IDConcedente,
		IDUsuario:      create.IDUsuario,
		IDBanco:        create.IDBanco,
	}
	return nil
}

func (r *remessaRepo) Update(ctx context.Context, id uint, update *dto.RemessaUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	m, ok := r.s.Remessas[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	if update.NumProcesso != nil {
		m.NumProcesso = *update.NumProcesso
	}
	if update.NomeProponente != nil {
		m.NomeProponente = *update.NomeProponente
	}
	if update.CpfCnpj != nil {
		m.CpfCnpj = *update.CpfCnpj
	}
	if update.NumConvenio != nil {
		m.NumConvenio = *update.NumConvenio
	}
	if update.Situacao != nil {
		m.Situacao = *update.Situacao
	}
	if update.IDConcedente != nil {
		m.IDConcedente = *update.IDConcedente
	}
	if update.LimparBanco {
		m.IDBanco = nil
	} else if update.IDBanco != nil {
		m.IDBanco = update.IDBanco
	}
	r.s.Remessas[id] = m
	return nil
}

func (r *remessaRepo) Get(ctx context.Context, id uint) (*dto.RemessaRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	m, ok := r.s.Remessas[id]
	if !ok {
		return nil, nil
	}
	joined := r.join(m)
	return &joined, nil
}

func (r *remessaRepo) List(ctx context.Context, p list.Params) (*list.Page[dto.RemessaRead], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	var rows []dto.RemessaRead
	for _, m := range r.s.Remessas {
		if p.Filtro != "" && string(m.Situacao) != p.Filtro {
			continue
		}
		if contem(m.NumProcesso, p.Busca) || contem(m.NomeProponente, p.Busca) {
			rows = append(rows, r.join(m))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DtRemessa.After(rows[j].DtRemessa) })
	return paginar(rows, p), nil
}

func (r *remessaRepo) All(ctx context.Context) ([]dto.RemessaRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	var rows []dto.RemessaRead
	for _, m := range r.s.Remessas {
		rows = append(rows, r.join(m))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].NumProcesso < rows[j].NumProcesso })
	return rows, nil
}

func (r *remessaRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	if _, ok := r.s.Remessas[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.s.Remessas, id)
	return nil
}

func (r *remessaRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.Remessas)), r.s.FailWith
}

func (r *remessaRepo) ProximoNumero(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	max := 0
	for _, m := range r.s.Remessas {
		if m.NumRemessa > max {
			max = m.NumRemessa
		}
	}
	return max + 1, nil
}

func (r *remessaRepo) AtualizarSituacao(ctx context.Context, id uint, s domain.Situacao) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	m, ok := r.s.Remessas[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	m.Situacao = s
	r.s.Remessas[id] = m
	return nil
}

func (r *remessaRepo) CountPorSituacao(ctx context.Context) (map[domain.Situacao]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	porSituacao := map[domain.Situacao]int64{}
	for _, m := range r.s.Remessas {
		porSituacao[m.Situacao]++
	}
	return porSituacao, nil
}

func (r *remessaRepo) CountByBanco(ctx context.Context, idBanco uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var n int64
	for _, m := range r.s.Remessas {
		if m.IDBanco != nil && *m.IDBanco == idBanco {
			n++
		}
	}
	return n, nil
}

func (r *remessaRepo) CountByConcedente(ctx context.Context, idConcedente uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var n int64
	for _, m := range r.s.Remessas {
		if m.IDConcedente == idConcedente {
			n++
		}
	}
	return n, nil
}

func (r *remessaRepo) CountByUsuario(ctx context.Context, idUsuario uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var n int64
	for _, m := range r.s.Remessas {
		if m.IDUsuario == idUsuario {
			n++
		}
	}
	return n, nil
}

// --- contas convênio ---

type contaRepo struct{ s *Store }

func (r *contaRepo) join(c dto.ContaRead) dto.ContaRead {
	m := r.s.Remessas[c.IDRemessa]
	a := r.s.Agencias[c.IDAgencia]
	c.NumProcesso = m.NumProcesso
	c.NomeProponente = m.NomeProponente
	c.NomeAgencia = a.NomeAgencia
	c.BancoNome = r.s.Bancos[a.IDBanco].Nome
	return c
}

func (r *contaRepo) Create(ctx context.Context, create *dto.ContaCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	id := r.s.nextID()
	r.s.Contas[id] = dto.ContaRead{
		ID:         id,
		NumConta:   create.NumConta,
		DvConta:    create.DvConta,
		DtAbertura: create.DtAbertura,
		IDRemessa:  create.IDRemessa,
		IDAgencia:  create.IDAgencia,
	}
	return nil
}

func (r *contaRepo) Update(ctx context.Context, id uint, update *dto.ContaUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	c, ok := r.s.Contas[id]
	if !ok {
		return domain.ErrNaoEncontrado
	}
	if update.NumConta != nil {
		c.NumConta = *update.NumConta
	}
	if update.DvConta != nil {
		c.DvConta = *update.DvConta
	}
	if update.DtAbertura != nil {
		c.DtAbertura = *update.DtAbertura
	}
	if update.IDRemessa != nil {
		c.IDRemessa = *update.IDRemessa
	}
	if update.IDAgencia != nil {
		c.IDAgencia = *update.IDAgencia
	}
	r.s.Contas[id] = c
	return nil
}

func (r *contaRepo) Get(ctx context.Context, id uint) (*dto.ContaRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	c, ok := r.s.Contas[id]
	if !ok {
		return nil, nil
	}
	joined := r.join(c)
	return &joined, nil
}

func (r *contaRepo) List(ctx context.Context, p list.Params) (*list.Page[dto.ContaRead], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	var rows []dto.ContaRead
	for _, c := range r.s.Contas {
		if contem(c.NumConta, p.Busca) {
			rows = append(rows, r.join(c))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].DtAbertura.After(rows[j].DtAbertura) })
	return paginar(rows, p), nil
}

func (r *contaRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	if _, ok := r.s.Contas[id]; !ok {
		return domain.ErrNaoEncontrado
	}
	delete(r.s.Contas, id)
	return nil
}

func (r *contaRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.Contas)), r.s.FailWith
}

func (r *contaRepo) CountByAgencia(ctx context.Context, idAgencia uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var n int64
	for _, c := range r.s.Contas {
		if c.IDAgencia == idAgencia {
			n++
		}
	}
	return n, nil
}

func (r *contaRepo) CountByRemessa(ctx context.Context, idRemessa uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var n int64
	for _, c := range r.s.Contas {
		if c.IDRemessa == idRemessa {
			n++
		}
	}
	return n, nil
}
