// Package dto carries the data transfer objects exchanged between webapi,
// services and repositories. Create/Update structs flow inwards; Read
// structs are query-shaped projections flowing outwards, already joined
// with the display names the views need.
package dto

import "github.com/wbsantos/abertura-contas/pkg/domain"

// UsuarioCreate is the payload to insert a new usuário. Senha is already
// the bcrypt hash when it reaches the repository.
type UsuarioCreate struct {
	Nome        string
	Matricula   string
	Email       string
	Instituicao string
	Login       string
	Senha       string
	Perfil      domain.Perfil
	Status      domain.StatusUsuario
}

// UsuarioUpdate updates an existing usuário. Nil fields are left untouched.
type UsuarioUpdate struct {
	Nome        *string
	Matricula   *string
	Email       *string
	Instituicao *string
	Login       *string
	Senha       *string
	Perfil      *domain.Perfil
	Status      *domain.StatusUsuario
}

// UsuarioRead is the read projection of a usuário. SenhaHash is only
// populated by credential lookups, never by listings.
type UsuarioRead struct {
	ID          uint
	Nome        string
	Matricula   string
	Email       string
	Instituicao string
	Login       string
	SenhaHash   string
	Perfil      domain.Perfil
	Status      domain.StatusUsuario
}
