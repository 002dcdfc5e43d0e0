package repository

import (
	"context"

	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization y sus membresías (DIP).
type OrganizationRepository interface {
	// CreateWithOwner inserta la organización y la membresía del creador en una sola transacción.
	CreateWithOwner(ctx context.Context, org *entity.Organization, owner *entity.Membership) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	// Update actualiza los datos de la organización; nombre o NIT repetidos devuelven domain.ErrDuplicate.
	Update(ctx context.Context, org *entity.Organization) error
	ListByUser(ctx context.Context, userID string) ([]*entity.Organization, error)
	UserHasAccess(ctx context.Context, userID, organizationID string) (bool, error)
	// MembershipRole devuelve "" si el usuario no es miembro.
	MembershipRole(ctx context.Context, userID, organizationID string) (string, error)
}
