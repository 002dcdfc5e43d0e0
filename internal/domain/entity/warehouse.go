package entity

import "time"

// Warehouse representa una bodega de una organización.
type Warehouse struct {
	ID             string
	OrganizationID string
	Name           string
	Address        string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
