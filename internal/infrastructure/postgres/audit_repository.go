package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/crm-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL (usable con pool o tx).
// La tabla audit_logs es append-only: este adaptador solo inserta.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador del registro de auditoría. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Record añade una entrada. metadata se persiste como jsonb; nil se guarda como objeto vacío.
func (r *AuditRepo) Record(ctx context.Context, actorID *string, action string, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO audit_logs (actor_id, action, metadata) VALUES ($1, $2, $3)`,
		actorID, action, metadata,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
