package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Nota de seguridad: ErrInvalidCredentials cubre tanto "usuario no existe" como
// "password incorrecto"; el cliente nunca debe poder distinguirlos.
var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrLeadNotFound       = errors.New("lead no encontrado")
	ErrNoUpdates          = errors.New("sin campos para actualizar")
	ErrNoMatchingRoles    = errors.New("ningún rol coincide con el catálogo")
	ErrForbidden          = errors.New("acceso denegado")
)
