package dto

import (
	"encoding/json"
	"fmt"
	"time"
)

// CreateLeadRequest entrada para crear un lead. Status es opcional: vacío se
// interpreta como "New"; cualquier valor suministrado se valida contra el
// catálogo de estados en el use case. Phone y Notes admiten null.
type CreateLeadRequest struct {
	Name   string  `json:"name" validate:"required,min=1"`
	Email  string  `json:"email" validate:"required,email"`
	Phone  *string `json:"phone"`
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateLeadRequest parche disperso para PATCH /leads/:id. El unmarshal propio
// distingue campo ausente (no se toca) de campo presente con null (se escribe
// NULL, solo válido en phone y notes). Claves desconocidas se ignoran, como
// hace el cliente web.
type UpdateLeadRequest struct {
	Name   *string
	Email  *string
	Status *string
	Phone  *string
	Notes  *string

	NameSet   bool
	EmailSet  bool
	StatusSet bool
	PhoneSet  bool
	NotesSet  bool
}

// UnmarshalJSON registra qué claves vinieron en el cuerpo además de sus valores.
func (r *UpdateLeadRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		var dst **string
		switch key {
		case "name":
			dst, r.NameSet = &r.Name, true
		case "email":
			dst, r.EmailSet = &r.Email, true
		case "status":
			dst, r.StatusSet = &r.Status, true
		case "phone":
			dst, r.PhoneSet = &r.Phone, true
		case "notes":
			dst, r.NotesSet = &r.Notes, true
		default:
			continue
		}
		if err := json.Unmarshal(val, dst); err != nil {
			return fmt.Errorf("campo %s: %w", key, err)
		}
	}
	return nil
}

// IsEmpty indica si el cuerpo no trajo ningún campo actualizable.
func (r *UpdateLeadRequest) IsEmpty() bool {
	return !r.NameSet && !r.EmailSet && !r.StatusSet && !r.PhoneSet && !r.NotesSet
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes"`
	OwnerEmail *string   `json:"owner_email,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LeadEnvelope envoltura {"lead": {...}} para POST y PATCH.
type LeadEnvelope struct {
	Lead LeadResponse `json:"lead"`
}

// LeadListResponse envoltura {"leads": [...]} para GET /leads.
type LeadListResponse struct {
	Leads []LeadResponse `json:"leads"`
}
