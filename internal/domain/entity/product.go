package entity

import "time"

// DefaultUnit unidad de medida por defecto de un producto.
const DefaultUnit = "und"

// Product representa un producto del catálogo de una organización.
// Barcode es opcional; si existe es único dentro de la organización.
type Product struct {
	ID             string
	OrganizationID string
	Name           string
	Barcode        string
	Description    string
	Unit           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
