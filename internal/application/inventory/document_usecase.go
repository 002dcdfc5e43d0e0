package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// maxNumberAttempts intentos de numeración automática antes de devolver ErrConflict.
const maxNumberAttempts = 3

// DocumentUseCase casos de uso del agregado Document: creación con numeración atómica,
// escaneo con acumulación, posiciones explícitas y transiciones de estado.
type DocumentUseCase struct {
	txRunner      TxRunner
	docRepo       repository.DocumentRepository
	itemRepo      repository.DocumentItemRepository
	warehouseRepo repository.WarehouseRepository
	metrics       Recorder
	log           zerolog.Logger
	now           func() time.Time
}

// NewDocumentUseCase construye el caso de uso. metrics puede ser nil.
func NewDocumentUseCase(
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	itemRepo repository.DocumentItemRepository,
	warehouseRepo repository.WarehouseRepository,
	metrics Recorder,
	log zerolog.Logger,
) *DocumentUseCase {
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &DocumentUseCase{
		txRunner:      txRunner,
		docRepo:       docRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		metrics:       metrics,
		log:           log.With().Str("component", "documents").Logger(),
		now:           time.Now,
	}
}

// CreateDocumentInput entrada para crear un documento.
// Number vacío = numeración automática PREFIX-YYMM-NNNN. DocumentDate nil = fecha de creación.
type CreateDocumentInput struct {
	OrganizationID         string
	Type                   entity.DocumentType
	WarehouseID            string
	SourceWarehouseID      string
	DestinationWarehouseID string
	DocumentDate           *time.Time
	Comment                string
	CreatedByUserID        string
	Number                 string
}

// CreateDocument crea un documento en borrador. Valida tipo y pertenencia de bodegas a la organización;
// el consecutivo se toma del contador transaccional en la misma transacción que el insert.
func (uc *DocumentUseCase) CreateDocument(ctx context.Context, in CreateDocumentInput) (*entity.Document, error) {
	if in.OrganizationID == "" {
		return nil, domain.NewValidationError("organization_id es requerido")
	}
	if !in.Type.IsValid() {
		return nil, domain.NewValidationError("tipo de documento desconocido: %q", in.Type)
	}
	if in.Type == entity.DocumentTypeTransfer && in.SourceWarehouseID != "" &&
		in.SourceWarehouseID == in.DestinationWarehouseID {
		return nil, domain.NewValidationError("la bodega de origen y destino deben ser distintas")
	}

	now := uc.now()
	doc := &entity.Document{
		ID:                     uuid.New().String(),
		OrganizationID:         in.OrganizationID,
		Type:                   in.Type,
		Status:                 entity.DocumentStatusDraft,
		DocumentDate:           now,
		Comment:                in.Comment,
		CreatedByUserID:        in.CreatedByUserID,
		WarehouseID:            in.WarehouseID,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		CreatedAt:              now,
		Items:                  []entity.DocumentItem{},
	}
	if in.DocumentDate != nil && !in.DocumentDate.IsZero() {
		doc.DocumentDate = *in.DocumentDate
	}
	for _, whID := range doc.WarehouseRefs() {
		ok, err := uc.warehouseRepo.BelongsToOrganization(ctx, whID, in.OrganizationID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.NewValidationError("la bodega %s no existe en la organización", whID)
		}
	}

	explicit := strings.TrimSpace(in.Number)
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		_ repository.DocumentItemRepository,
		_ repository.ProductRepository,
	) error {
		if explicit != "" {
			doc.Number = explicit
			if err := docRepo.Create(ctx, doc); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					return domain.NewValidationError("el número %s ya existe en la organización", explicit)
				}
				return err
			}
			return nil
		}
		for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
			seq, err := docRepo.NextSequence(ctx, doc.OrganizationID, doc.Type, now.Year())
			if err != nil {
				return err
			}
			doc.Number = inventory.FormatNumber(doc.Type, now, seq)
			err = docRepo.Create(ctx, doc)
			if err == nil {
				return nil
			}
			if !errors.Is(err, domain.ErrDuplicate) {
				return err
			}
			uc.log.Warn().Str("number", doc.Number).Int("attempt", attempt).Msg("número de documento ocupado, reintentando")
		}
		return fmt.Errorf("%w: no se pudo asignar un número único al documento", domain.ErrConflict)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.DocumentCreated(doc.Type)
	uc.log.Info().
		Str("document_id", doc.ID).
		Str("organization_id", doc.OrganizationID).
		Str("type", string(doc.Type)).
		Str("number", doc.Number).
		Msg("documento creado")
	return doc, nil
}

// GetDocument obtiene un documento con sus posiciones ordenadas por creación.
func (uc *DocumentUseCase) GetDocument(ctx context.Context, id string) (*entity.Document, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.NotFound("documento", id)
	}
	items, err := uc.itemRepo.ListByDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	return doc, nil
}

// GetOrganizationDocuments lista los documentos de la organización, más recientes primero, con sus posiciones.
// docType vacío = todos los tipos.
func (uc *DocumentUseCase) GetOrganizationDocuments(ctx context.Context, organizationID string, docType entity.DocumentType) ([]*entity.Document, error) {
	if docType != "" && !docType.IsValid() {
		return nil, domain.NewValidationError("tipo de documento desconocido: %q", docType)
	}
	return uc.listWithItems(ctx, organizationID, repository.DocumentFilter{Type: docType})
}

// ListDocuments lista documentos según filtro, con sus posiciones (usado por la sincronización móvil).
func (uc *DocumentUseCase) ListDocuments(ctx context.Context, organizationID string, filter repository.DocumentFilter) ([]*entity.Document, error) {
	return uc.listWithItems(ctx, organizationID, filter)
}

func (uc *DocumentUseCase) listWithItems(ctx context.Context, organizationID string, filter repository.DocumentFilter) ([]*entity.Document, error) {
	docs, err := uc.docRepo.ListByOrganization(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return []*entity.Document{}, nil
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	byDoc, err := uc.itemRepo.ListByDocuments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		d.Items = byDoc[d.ID]
		if d.Items == nil {
			d.Items = []entity.DocumentItem{}
		}
	}
	return docs, nil
}

// DeleteDocument elimina un documento en borrador o cancelado junto con sus posiciones.
// Los documentos completados se conservan para auditoría.
func (uc *DocumentUseCase) DeleteDocument(ctx context.Context, id string) error {
	var number string
	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		_ repository.DocumentItemRepository,
		_ repository.ProductRepository,
	) error {
		doc, err := docRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.NotFound("documento", id)
		}
		if doc.Status == entity.DocumentStatusCompleted {
			return domain.NewValidationError("no se puede eliminar el documento completado %s", doc.Number)
		}
		number = doc.Number
		return docRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("document_id", id).Str("number", number).Msg("documento eliminado")
	return nil
}

// lockDraft bloquea el documento y exige que siga en borrador.
func lockDraft(ctx context.Context, docRepo repository.DocumentRepository, id string) (*entity.Document, error) {
	doc, err := docRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.NotFound("documento", id)
	}
	if err := inventory.CheckEditable(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
