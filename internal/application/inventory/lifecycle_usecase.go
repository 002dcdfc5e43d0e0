package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// CompleteDocument pasa un borrador a completed. Exige posiciones y, en inventarios, que todas tengan
// cantidad real distinta de cero. Ninguna cantidad se modifica.
func (uc *DocumentUseCase) CompleteDocument(ctx context.Context, id string) (*entity.Document, error) {
	return uc.transition(ctx, id, entity.DocumentStatusCompleted, "documento completado")
}

// CancelDocument pasa un borrador a cancelled.
func (uc *DocumentUseCase) CancelDocument(ctx context.Context, id string) (*entity.Document, error) {
	return uc.transition(ctx, id, entity.DocumentStatusCancelled, "documento cancelado")
}

// transition bloquea el documento, valida y aplica un UPDATE condicionado a status = 'draft'.
// Si el UPDATE no afecta filas otra transacción ganó la carrera y se devuelve ErrConflict.
func (uc *DocumentUseCase) transition(ctx context.Context, id, to, logMsg string) (*entity.Document, error) {
	var doc *entity.Document
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		itemRepo repository.DocumentItemRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		doc, err = docRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound("documento", id)
		}
		doc.Items, err = itemRepo.ListByDocument(ctx, id)
		if err != nil {
			return err
		}
		if to == entity.DocumentStatusCompleted {
			err = inventory.CheckCompletable(doc)
		} else {
			err = inventory.CheckTransition(doc, to)
		}
		if err != nil {
			return err
		}
		ok, err := docRepo.UpdateStatus(ctx, id, entity.DocumentStatusDraft, to)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el documento %s cambió de estado concurrentemente", domain.ErrConflict, doc.Number)
		}
		doc.Status = to
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StatusChanged(to)
	uc.log.Info().
		Str("document_id", doc.ID).
		Str("number", doc.Number).
		Str("status", to).
		Int("items", len(doc.Items)).
		Msg(logMsg)
	return doc, nil
}
