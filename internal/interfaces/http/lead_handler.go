package http

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/pkg/validation"
)

// LeadHandler maneja las peticiones HTTP de leads (protegido, Admin|Sales).
type LeadHandler struct {
	uc *usecase.LeadUseCase
}

// NewLeadHandler construye el handler de leads.
func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

func invalidStatusMessage() string {
	return "status must be one of: " + strings.Join(entity.LeadStatuses, ", ")
}

// List godoc
// @Summary      Listar leads (máx. 200, más recientes primero)
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LeadListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear lead (el actor queda como dueño)
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body."})
	}
	if err := validation.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	// Status vacío se normaliza a "New" en el use case; cualquier otro valor
	// debe pertenecer al catálogo, nunca se coerce en silencio.
	if in.Status != "" && !entity.IsValidLeadStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: invalidStatusMessage()})
	}

	actor := CurrentUser(c)
	out, err := h.uc.Create(c.Context(), actor.ID, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LeadEnvelope{Lead: *out})
}

// Update godoc
// @Summary      Actualización parcial de un lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lead"
// @Param        body  body  object  true  "Subconjunto de {name, email, phone, status, notes}"
// @Success      200   {object}  dto.LeadEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [patch]
func (h *LeadHandler) Update(c *fiber.Ctx) error {
	leadID := c.Params("id")
	if leadID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing lead id."})
	}

	var in dto.UpdateLeadRequest
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body."})
	}
	if in.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No updates provided."})
	}

	patch, err := buildPatch(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	actor := CurrentUser(c)
	out, err := h.uc.Update(c.Context(), actor.ID, leadID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoUpdates):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "No updates provided."})
		case errors.Is(err, domain.ErrLeadNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Lead not found."})
		}
		return err
	}
	return c.JSON(dto.LeadEnvelope{Lead: *out})
}

// buildPatch valida el parche y lo traduce al parche tipado del dominio.
// name, email y status son NOT NULL: presentes con null se rechazan aquí.
// phone y notes presentes con null se traducen a "escribir NULL".
func buildPatch(in dto.UpdateLeadRequest) (entity.LeadPatch, error) {
	var patch entity.LeadPatch
	if in.NameSet {
		if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
			return patch, errors.New("name must not be empty")
		}
		patch.Name = in.Name
	}
	if in.EmailSet {
		if in.Email == nil {
			return patch, errors.New("email must not be null")
		}
		if err := validation.Email(*in.Email); err != nil {
			return patch, err
		}
		patch.Email = in.Email
	}
	if in.StatusSet {
		if in.Status == nil || !entity.IsValidLeadStatus(*in.Status) {
			return patch, errors.New(invalidStatusMessage())
		}
		patch.Status = in.Status
	}
	if in.PhoneSet {
		patch.Phone = in.Phone
		patch.PhoneSet = true
	}
	if in.NotesSet {
		patch.Notes = in.Notes
		patch.NotesSet = true
	}
	return patch, nil
}
