package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// DocumentFilter criterios de listado de documentos de una organización.
type DocumentFilter struct {
	Type         entity.DocumentType // vacío = todos
	CreatedAfter *time.Time
	Limit        int // 0 = sin límite
}

// DocumentRepository define el puerto de persistencia para la cabecera de Document (DIP).
// Las posiciones se manejan con DocumentItemRepository.
type DocumentRepository interface {
	// Create inserta la cabecera. Devuelve domain.ErrDuplicate si el número ya existe en la organización.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetForUpdate obtiene la cabecera y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	// ListByOrganization devuelve cabeceras, más recientes primero.
	ListByOrganization(ctx context.Context, organizationID string, filter DocumentFilter) ([]*entity.Document, error)
	// UpdateStatus cambia el estado solo si el actual es from. Devuelve false si no afectó filas.
	UpdateStatus(ctx context.Context, id, from, to string) (bool, error)
	// Delete elimina el documento; sus posiciones se eliminan en cascada.
	Delete(ctx context.Context, id string) error
	// NextSequence incrementa y devuelve el consecutivo de (organización, tipo, año).
	NextSequence(ctx context.Context, organizationID string, docType entity.DocumentType, year int) (int, error)
}
