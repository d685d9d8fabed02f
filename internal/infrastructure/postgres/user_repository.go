package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// FindByEmail busca un usuario por email (ya en minúsculas), con su hash de password.
// Devuelve (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), password_hash, created_at, updated_at
		FROM users WHERE email = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

// FindWithRoles carga el usuario por ID junto con la unión de sus nombres de rol.
// Devuelve (nil, nil) si no existe; ausencia no es un error.
func (r *UserRepo) FindWithRoles(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, email, COALESCE(name, ''), password_hash, created_at, updated_at
		FROM users WHERE id = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	roles, err := r.Roles(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return &u, nil
}

// Roles devuelve los nombres de rol asignados al usuario vía user_roles.
func (r *UserRepo) Roles(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT roles.name
		FROM user_roles
		JOIN roles ON roles.id = user_roles.role_id
		WHERE user_roles.user_id = $1`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user roles: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan role name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Upsert crea el usuario o, si el email ya existe, reemplaza su password hash.
// El ID del usuario existente se conserva (RETURNING devuelve el id estable).
func (r *UserRepo) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, updated_at = NOW()
		RETURNING id, email, COALESCE(name, ''), password_hash, created_at, updated_at`
	var u entity.User
	err := r.q.QueryRow(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &u, nil
}

// ReplaceRoles sustituye todas las asignaciones de rol del usuario por las que
// coincidan con roleNames en el catálogo. Ningún nombre válido → ErrNoMatchingRoles
// y no se toca nada (debe ejecutarse dentro de una transacción).
func (r *UserRepo) ReplaceRoles(ctx context.Context, userID string, roleNames []string) error {
	rows, err := r.q.Query(ctx, `SELECT id FROM roles WHERE name = ANY($1)`, roleNames)
	if err != nil {
		return fmt.Errorf("resolve roles: %w", err)
	}
	defer rows.Close()
	var roleIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan role id: %w", err)
		}
		roleIDs = append(roleIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(roleIDs) == 0 {
		return domain.ErrNoMatchingRoles
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear user roles: %w", err)
	}
	for _, roleID := range roleIDs {
		if _, err := r.q.Exec(ctx, `INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, userID, roleID); err != nil {
			return fmt.Errorf("assign role: %w", err)
		}
	}
	return nil
}
