package dto

import "time"

// CreateOrganizationRequest entrada para crear una organización.
type CreateOrganizationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	TaxID   string `json:"tax_id" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"max=500"`
	Phone   string `json:"phone" validate:"max=50"`
}

// UpdateOrganizationRequest actualización parcial; los campos omitidos no cambian.
type UpdateOrganizationRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	TaxID   *string `json:"tax_id" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
}

// OrganizationResponse salida de una organización.
type OrganizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role,omitempty"` // rol del usuario actual, si aplica
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrganizationListResponse organizaciones del usuario.
type OrganizationListResponse struct {
	Items []OrganizationResponse `json:"items"`
}
