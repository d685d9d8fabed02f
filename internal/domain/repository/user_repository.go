package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios y sus asignaciones de rol.
type UserRepository interface {
	// FindByEmail busca por email (ya normalizado a minúsculas) e incluye el hash
	// de password para verificación. Devuelve (nil, nil) si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindWithRoles carga el usuario y la unión de nombres de rol asignados.
	// Devuelve (nil, nil) si no existe; ausencia no es un error.
	FindWithRoles(ctx context.Context, id string) (*entity.User, error)

	// Roles devuelve los nombres de rol asignados a un usuario.
	Roles(ctx context.Context, userID string) ([]string, error)

	// Upsert crea el usuario o, si el email ya existe, reemplaza su password hash.
	// Devuelve el usuario persistido (con su ID estable).
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)

	// ReplaceRoles sustituye por completo las asignaciones de rol del usuario por
	// las del catálogo que coincidan con roleNames. Si ninguno coincide devuelve
	// domain.ErrNoMatchingRoles sin tocar nada.
	ReplaceRoles(ctx context.Context, userID string, roleNames []string) error
}
