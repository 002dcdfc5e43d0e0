package dto

import "time"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Barcode     string `json:"barcode" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Unit        string `json:"unit" validate:"omitempty,max=20"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Barcode     *string `json:"barcode" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Unit        *string `json:"unit" validate:"omitempty,min=1,max=20"`
	IsActive    *bool   `json:"is_active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Barcode        string    `json:"barcode,omitempty"`
	Description    string    `json:"description"`
	Unit           string    `json:"unit"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
