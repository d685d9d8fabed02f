package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.LeadRepository = (*LeadRepo)(nil)

// LeadRepo implementación del puerto LeadRepository sobre PostgreSQL (usable con pool o tx).
type LeadRepo struct {
	q Querier
}

// NewLeadRepository construye el adaptador de persistencia para leads. Pasar pool o tx (Querier).
func NewLeadRepository(q Querier) *LeadRepo {
	return &LeadRepo{q: q}
}

// List devuelve hasta limit leads ordenados por updated_at descendente, con el
// email del dueño resuelto (LEFT JOIN: leads sin dueño salen con owner_email NULL).
func (r *LeadRepo) List(ctx context.Context, limit int) ([]entity.Lead, error) {
	query := `
		SELECT leads.id, leads.name, leads.email, leads.phone, leads.status,
		       leads.notes, leads.owner_id, users.email AS owner_email,
		       leads.created_at, leads.updated_at
		FROM leads
		LEFT JOIN users ON users.id = leads.owner_id
		ORDER BY leads.updated_at DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	var list []entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Status,
			&l.Notes, &l.OwnerID, &l.OwnerEmail, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Create inserta el lead y completa los timestamps que genera la base.
func (r *LeadRepo) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, status, notes, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Status, lead.Notes, lead.OwnerID,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// UpdatePartial construye el UPDATE solo con los campos presentes del parche y
// refresca updated_at siempre, aunque ningún valor cambie. Cero filas afectadas
// → domain.ErrLeadNotFound. El llamador garantiza que el parche no viene vacío.
func (r *LeadRepo) UpdatePartial(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	var sets []string
	var args []any
	idx := 1
	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.PhoneSet {
		add("phone", patch.Phone) // puntero nil escribe NULL
	}
	if patch.NotesSet {
		add("notes", patch.Notes)
	}
	if len(sets) == 0 {
		return nil, domain.ErrNoUpdates
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE leads
		SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING id, name, email, phone, status, notes, owner_id, created_at, updated_at`,
		strings.Join(sets, ", "), idx)

	var l entity.Lead
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Status, &l.Notes, &l.OwnerID,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return &l, nil
}
