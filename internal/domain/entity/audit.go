package entity

import "time"

// Acciones auditadas. Toda operación que muta estado escribe exactamente una entrada.
const (
	AuditActionLogin      = "login"
	AuditActionCreateLead = "create_lead"
	AuditActionUpdateLead = "update_lead"
)

// AuditLog es una entrada inmutable del registro de auditoría: quién hizo qué y
// con qué metadatos. Nunca se actualiza ni se borra; si el actor se elimina
// después, la FK deja ActorID en NULL sin tocar la entrada.
type AuditLog struct {
	ID        string
	ActorID   *string
	Action    string
	Metadata  map[string]any
	CreatedAt time.Time
}
