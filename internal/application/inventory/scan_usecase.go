package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// ScanAndAdd resuelve el código de barras dentro de la organización del documento y suma la cantidad
// a la posición del producto, creándola con cantidad esperada 0 si no existe.
// El documento queda bloqueado durante la operación y la posición se fusiona con un upsert sobre
// (documento, producto), por lo que escaneos concurrentes nunca duplican la posición.
func (uc *DocumentUseCase) ScanAndAdd(ctx context.Context, documentID, barcode string, quantity decimal.Decimal) (*entity.DocumentItem, error) {
	if err := inventory.ValidateQuantity("cantidad", quantity, true); err != nil {
		uc.metrics.ItemScanned(ScanResultRejected)
		return nil, err
	}
	code := inventory.NormalizeBarcode(barcode)
	if code == "" {
		uc.metrics.ItemScanned(ScanResultRejected)
		return nil, domain.NewValidationError("código de barras requerido")
	}

	var (
		stored  *entity.DocumentItem
		created bool
	)
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		itemRepo repository.DocumentItemRepository,
		productRepo repository.ProductRepository,
	) error {
		doc, err := lockDraft(ctx, docRepo, documentID)
		if err != nil {
			return err
		}
		product, err := productRepo.GetByBarcode(ctx, doc.OrganizationID, code)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewValidationError("producto no encontrado: %s", code)
		}
		stored, created, err = itemRepo.Accumulate(ctx, &entity.DocumentItem{
			ID:               uuid.New().String(),
			DocumentID:       doc.ID,
			ProductID:        product.ID,
			QuantityExpected: decimal.Zero,
			QuantityActual:   quantity,
			CreatedAt:        uc.now(),
		})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			uc.metrics.ItemScanned(ScanResultRejected)
		}
		return nil, err
	}

	result := ScanResultMerged
	if created {
		result = ScanResultCreated
	}
	uc.metrics.ItemScanned(result)
	uc.log.Info().
		Str("document_id", documentID).
		Str("item_id", stored.ID).
		Str("barcode", code).
		Str("quantity", quantity.String()).
		Str("result", result).
		Msg("escaneo registrado")
	return stored, nil
}

// AddItemInput entrada para agregar una posición explícita (cantidad esperada conocida de antemano).
type AddItemInput struct {
	ProductID string
	Expected  decimal.Decimal
	Actual    decimal.Decimal
}

// AddItemExplicit agrega una posición con cantidades dadas. El producto debe pertenecer a la organización
// del documento y no estar ya en él.
func (uc *DocumentUseCase) AddItemExplicit(ctx context.Context, documentID string, in AddItemInput) (*entity.DocumentItem, error) {
	if in.ProductID == "" {
		return nil, domain.NewValidationError("product_id es requerido")
	}
	if err := inventory.ValidateQuantity("cantidad esperada", in.Expected, false); err != nil {
		return nil, err
	}
	if err := inventory.ValidateQuantity("cantidad real", in.Actual, false); err != nil {
		return nil, err
	}

	item := &entity.DocumentItem{
		ID:               uuid.New().String(),
		DocumentID:       documentID,
		ProductID:        in.ProductID,
		QuantityExpected: in.Expected,
		QuantityActual:   in.Actual,
		CreatedAt:        uc.now(),
	}
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		itemRepo repository.DocumentItemRepository,
		productRepo repository.ProductRepository,
	) error {
		doc, err := lockDraft(ctx, docRepo, documentID)
		if err != nil {
			return err
		}
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.OrganizationID != doc.OrganizationID {
			return domain.NewValidationError("producto no encontrado en la organización: %s", in.ProductID)
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.NewValidationError("el producto %s ya está en el documento", product.Name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("document_id", documentID).Str("item_id", item.ID).Str("product_id", in.ProductID).Msg("posición agregada")
	return item, nil
}

// UpdateItemQuantity sobrescribe (no acumula) la cantidad real de una posición.
func (uc *DocumentUseCase) UpdateItemQuantity(ctx context.Context, itemID string, newActual decimal.Decimal) (*entity.DocumentItem, error) {
	if err := inventory.ValidateQuantity("cantidad real", newActual, false); err != nil {
		return nil, err
	}
	var item *entity.DocumentItem
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		itemRepo repository.DocumentItemRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		item, err = lockItemDocument(ctx, docRepo, itemRepo, itemID)
		if err != nil {
			return err
		}
		if err := itemRepo.UpdateActual(ctx, itemID, newActual); err != nil {
			return err
		}
		item.QuantityActual = newActual
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", itemID).Str("quantity_actual", newActual.String()).Msg("cantidad real actualizada")
	return item, nil
}

// DeleteItem elimina una posición de un documento en borrador.
func (uc *DocumentUseCase) DeleteItem(ctx context.Context, itemID string) error {
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		itemRepo repository.DocumentItemRepository,
		_ repository.ProductRepository,
	) error {
		if _, err := lockItemDocument(ctx, docRepo, itemRepo, itemID); err != nil {
			return err
		}
		return itemRepo.Delete(ctx, itemID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("item_id", itemID).Msg("posición eliminada")
	return nil
}

// GetItem obtiene una posición por ID.
func (uc *DocumentUseCase) GetItem(ctx context.Context, itemID string) (*entity.DocumentItem, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("posición", itemID)
	}
	return item, nil
}

// lockItemDocument resuelve la posición, bloquea su documento en borrador y relee la posición
// ya con el bloqueo tomado.
func lockItemDocument(
	ctx context.Context,
	docRepo repository.DocumentRepository,
	itemRepo repository.DocumentItemRepository,
	itemID string,
) (*entity.DocumentItem, error) {
	item, err := itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("posición", itemID)
	}
	if _, err := lockDraft(ctx, docRepo, item.DocumentID); err != nil {
		return nil, err
	}
	item, err = itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("posición", itemID)
	}
	return item, nil
}
