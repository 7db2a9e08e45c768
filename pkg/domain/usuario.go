// Package domain defines the core entities and enumerations of the
// account-opening workflow: users, banks, branches, grantors, shipments
// (remessas) and the agreement accounts opened for them.
package domain

import "fmt"

// Perfil is the access profile of a user.
type Perfil string

const (
	PerfilAdmin    Perfil = "ADMIN"
	PerfilOperador Perfil = "OPERADOR"
	PerfilMonitor  Perfil = "MONITOR"
)

// Perfis returns every profile, in privilege order, for form dropdowns.
func Perfis() []Perfil {
	return []Perfil{PerfilAdmin, PerfilOperador, PerfilMonitor}
}

// ParsePerfil validates a profile code coming from a form field.
func ParsePerfil(s string) (Perfil, error) {
	switch Perfil(s) {
	case PerfilAdmin, PerfilOperador, PerfilMonitor:
		return Perfil(s), nil
	}
	return "", fmt.Errorf("%w: perfil %q", ErrValorInvalido, s)
}

// Label returns the display name of the profile.
func (p Perfil) Label() string {
	switch p {
	case PerfilAdmin:
		return "Administrador"
	case PerfilOperador:
		return "Operador"
	case PerfilMonitor:
		return "Monitor"
	}
	return string(p)
}

// StatusUsuario is the account status of a user.
type StatusUsuario string

const (
	StatusAtivo   StatusUsuario = "ATIVO"
	StatusInativo StatusUsuario = "INATIVO"
)

// StatusUsuarios returns both statuses for form dropdowns.
func StatusUsuarios() []StatusUsuario {
	return []StatusUsuario{StatusAtivo, StatusInativo}
}

// ParseStatusUsuario validates a user status code.
func ParseStatusUsuario(s string) (StatusUsuario, error) {
	switch StatusUsuario(s) {
	case StatusAtivo, StatusInativo:
		return StatusUsuario(s), nil
	}
	return "", fmt.Errorf("%w: status %q", ErrValorInvalido, s)
}

// Label returns the display name of the status.
func (s StatusUsuario) Label() string {
	switch s {
	case StatusAtivo:
		return "Ativo"
	case StatusInativo:
		return "Inativo"
	}
	return string(s)
}
