package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/metrics"
)

// listLimit tope fijo del listado de leads. Lectura acotada, no paginada.
const listLimit = 200

// TxRunner ejecuta una mutación de lead y su entrada de auditoría en una misma
// transacción: si la auditoría falla, la mutación se revierte. Toda mutación
// queda probada en audit_logs o no ocurre.
type TxRunner interface {
	Run(ctx context.Context, fn func(leads repository.LeadRepository, audit repository.AuditRepository) error) error
}

// LeadUseCase casos de uso de leads: listado, alta y actualización parcial.
type LeadUseCase struct {
	leadRepo repository.LeadRepository
	tx       TxRunner
}

// NewLeadUseCase construye el caso de uso de leads.
func NewLeadUseCase(leadRepo repository.LeadRepository, tx TxRunner) *LeadUseCase {
	return &LeadUseCase{leadRepo: leadRepo, tx: tx}
}

// List devuelve hasta 200 leads, los actualizados más recientemente primero,
// con el email del dueño resuelto.
func (uc *LeadUseCase) List(ctx context.Context) (*dto.LeadListResponse, error) {
	leads, err := uc.leadRepo.List(ctx, listLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		out = append(out, dto.NewLeadResponse(&leads[i]))
	}
	return &dto.LeadListResponse{Leads: out}, nil
}

// Create registra un lead nuevo con el actor como dueño. Status vacío se
// normaliza a "New"; el handler ya validó que cualquier valor suministrado
// pertenezca al catálogo. El alta y su entrada de auditoría son atómicas.
func (uc *LeadUseCase) Create(ctx context.Context, actorID string, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.StatusNew
	}
	lead := &entity.Lead{
		ID:      uuid.New().String(),
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Status:  status,
		Notes:   in.Notes,
		OwnerID: &actorID,
	}
	err := uc.tx.Run(ctx, func(leads repository.LeadRepository, audit repository.AuditRepository) error {
		if err := leads.Create(ctx, lead); err != nil {
			return err
		}
		return audit.Record(ctx, &actorID, entity.AuditActionCreateLead, map[string]any{"lead_id": lead.ID})
	})
	if err != nil {
		return nil, err
	}
	metrics.LeadMutationsTotal.WithLabelValues(entity.AuditActionCreateLead).Inc()
	resp := dto.NewLeadResponse(lead)
	return &resp, nil
}

// Update aplica un parche disperso sobre el lead. Propaga domain.ErrNoUpdates
// si el parche viene vacío (sin tocar la base) y domain.ErrLeadNotFound si el
// id no existe; en ese caso tampoco se escribe auditoría.
func (uc *LeadUseCase) Update(ctx context.Context, actorID, leadID string, patch entity.LeadPatch) (*dto.LeadResponse, error) {
	if patch.IsEmpty() {
		return nil, domain.ErrNoUpdates
	}
	var updated *entity.Lead
	err := uc.tx.Run(ctx, func(leads repository.LeadRepository, audit repository.AuditRepository) error {
		lead, err := leads.UpdatePartial(ctx, leadID, patch)
		if err != nil {
			return err
		}
		updated = lead
		return audit.Record(ctx, &actorID, entity.AuditActionUpdateLead, map[string]any{"lead_id": leadID})
	})
	if err != nil {
		return nil, err
	}
	metrics.LeadMutationsTotal.WithLabelValues(entity.AuditActionUpdateLead).Inc()
	resp := dto.NewLeadResponse(updated)
	return &resp, nil
}
