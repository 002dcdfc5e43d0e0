package entity

import "time"

// Organization representa un tenant del sistema (multi-tenant): dueño de bodegas, productos y documentos.
type Organization struct {
	ID        string
	Name      string // único
	TaxID     string // NIT/INN, opcional pero único si existe
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
