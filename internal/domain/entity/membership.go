package entity

import "time"

// Roles de un usuario dentro de una organización.
const (
	RoleOwner       = "owner"
	RoleAdmin       = "admin"
	RoleStorekeeper = "storekeeper"
	RoleAuditor     = "auditor"
)

// Membership vincula un usuario con una organización (tabla user_organizations).
type Membership struct {
	ID             string
	UserID         string
	OrganizationID string
	Role           string // ver constantes Role*
	CreatedAt      time.Time
}
