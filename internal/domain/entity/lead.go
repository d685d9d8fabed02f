package entity

import "time"

// Estados válidos de un Lead, en el orden del pipeline de ventas.
const (
	StatusNew           = "New"
	StatusContacted     = "Contacted"
	StatusFollowUp      = "Follow-Up"
	StatusQuotationSent = "Quotation Sent"
	StatusConverted     = "Converted"
	StatusLost          = "Lost"
)

// LeadStatuses lista los seis estados válidos; ningún otro valor se persiste jamás.
var LeadStatuses = []string{
	StatusNew,
	StatusContacted,
	StatusFollowUp,
	StatusQuotationSent,
	StatusConverted,
	StatusLost,
}

// IsValidLeadStatus indica si s es uno de los estados del catálogo.
func IsValidLeadStatus(s string) bool {
	for _, v := range LeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Lead es un prospecto de venta. Phone y Notes son opcionales (nil = NULL).
// OwnerID apunta al usuario dueño; si ese usuario se borra, la FK lo deja en NULL
// en lugar de borrar el lead. OwnerEmail se resuelve con JOIN solo en listados.
type Lead struct {
	ID         string
	Name       string
	Email      string
	Phone      *string
	Status     string
	Notes      *string
	OwnerID    *string
	OwnerEmail *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LeadPatch es un parche disperso para actualización parcial. Distingue tres
// estados por campo:
//   - puntero nil y Set=false: el campo no vino en la petición, no se toca
//   - puntero no nil: se escribe el valor
//   - Set=true con puntero nil (solo phone/notes, columnas nullable): se escribe NULL
//
// Name, Email y Status son NOT NULL en la tabla, así que para ellos "presente con
// null" se rechaza en la capa de DTO antes de construir el parche.
type LeadPatch struct {
	Name     *string
	Email    *string
	Status   *string
	Phone    *string
	PhoneSet bool
	Notes    *string
	NotesSet bool
}

// IsEmpty indica si el parche no contiene ningún campo (→ ErrNoUpdates).
func (p LeadPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Status == nil && !p.PhoneSet && !p.NotesSet
}
