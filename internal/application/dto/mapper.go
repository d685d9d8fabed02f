package dto

import "github.com/jhoicas/crm-api/internal/domain/entity"

// NewUserResponse convierte la entidad a su representación pública (sin hash).
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Roles:     u.Roles,
		CreatedAt: u.CreatedAt,
	}
}

// NewLeadResponse convierte la entidad lead a su representación pública.
func NewLeadResponse(l *entity.Lead) LeadResponse {
	return LeadResponse{
		ID:         l.ID,
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Status:     l.Status,
		Notes:      l.Notes,
		OwnerEmail: l.OwnerEmail,
		UpdatedAt:  l.UpdatedAt,
	}
}
