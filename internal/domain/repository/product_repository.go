package repository

import (
	"context"

	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByBarcode busca dentro de una sola organización; nunca devuelve productos de otro tenant.
	GetByBarcode(ctx context.Context, organizationID, barcode string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete elimina el producto; si alguna posición de documento lo referencia devuelve un ValidationError.
	Delete(ctx context.Context, id string) error
	ListByOrganization(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]*entity.Product, error)
}
