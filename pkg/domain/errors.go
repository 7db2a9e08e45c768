package domain

import "errors"

var (
	// ErrNaoEncontrado indicates that the requested row does not exist.
	ErrNaoEncontrado = errors.New("registro não encontrado")

	// ErrDuplicado indicates a unique-key conflict (login, email,
	// matrícula, num_processo, código da secretaria).
	ErrDuplicado = errors.New("registro duplicado")

	// ErrPossuiDependentes blocks a delete while child rows still
	// reference the target. The schema has no ON DELETE CASCADE; the
	// check is done application-side.
	ErrPossuiDependentes = errors.New("registro possui dependentes")

	// ErrCredenciaisInvalidas is the single generic login failure. It
	// never distinguishes unknown login from wrong password.
	ErrCredenciaisInvalidas = errors.New("login ou senha inválidos")

	// ErrSenhasNaoConferem rejects a password reset whose confirmation
	// does not match.
	ErrSenhasNaoConferem = errors.New("as senhas não conferem")

	// ErrAcessoNegado rejects an action the session's perfil does not allow.
	ErrAcessoNegado = errors.New("acesso negado")

	// ErrValorInvalido flags an enum code outside its accepted set.
	ErrValorInvalido = errors.New("valor inválido")

	// ErrCampoObrigatorio flags a required form field left blank.
	ErrCampoObrigatorio = errors.New("campo obrigatório não preenchido")
)
