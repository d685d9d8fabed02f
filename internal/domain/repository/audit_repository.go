package repository

import "context"

// AuditRepository puerto del registro de auditoría (append-only).
type AuditRepository interface {
	// Record añade una entrada. actorID nil registra una acción sin actor.
	// El fallo de escritura debe propagarse: la operación primaria no puede
	// reportarse exitosa sin su entrada de auditoría.
	Record(ctx context.Context, actorID *string, action string, metadata map[string]any) error
}
