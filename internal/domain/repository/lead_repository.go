package repository

import (
	"context"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// LeadRepository puerto de persistencia de leads.
type LeadRepository interface {
	// List devuelve hasta limit leads ordenados por updated_at descendente,
	// con el email del dueño resuelto (LEFT JOIN). Lectura acotada, sin paginación.
	List(ctx context.Context, limit int) ([]entity.Lead, error)

	// Create inserta el lead y completa los timestamps generados.
	Create(ctx context.Context, lead *entity.Lead) error

	// UpdatePartial aplica solo los campos presentes del parche y refresca
	// updated_at siempre. Devuelve domain.ErrLeadNotFound si el id no existe.
	UpdatePartial(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error)
}
