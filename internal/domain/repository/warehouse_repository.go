package repository

import (
	"context"

	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	// Delete elimina la bodega; si algún documento la referencia devuelve un ValidationError.
	Delete(ctx context.Context, id string) error
	ListByOrganization(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) ([]*entity.Warehouse, error)
	// BelongsToOrganization indica si la bodega existe y pertenece a la organización.
	BelongsToOrganization(ctx context.Context, warehouseID, organizationID string) (bool, error)
}
