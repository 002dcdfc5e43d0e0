package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// DocumentItemRepository define el puerto de persistencia para DocumentItem (DIP).
type DocumentItemRepository interface {
	// Create inserta una posición. Devuelve domain.ErrDuplicate si el producto ya está en el documento.
	Create(ctx context.Context, item *entity.DocumentItem) error
	// Accumulate inserta la posición o suma item.QuantityActual a la existente de (documento, producto).
	// created indica si la posición es nueva.
	Accumulate(ctx context.Context, item *entity.DocumentItem) (stored *entity.DocumentItem, created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.DocumentItem, error)
	// ListByDocument devuelve las posiciones ordenadas por creación.
	ListByDocument(ctx context.Context, documentID string) ([]entity.DocumentItem, error)
	// ListByDocuments agrupa por documento las posiciones de varios documentos.
	ListByDocuments(ctx context.Context, documentIDs []string) (map[string][]entity.DocumentItem, error)
	UpdateActual(ctx context.Context, id string, actual decimal.Decimal) error
	Delete(ctx context.Context, id string) error
}
