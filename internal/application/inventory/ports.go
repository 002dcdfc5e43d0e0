package inventory

import (
	"context"

	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para numeración, escaneo y transiciones de estado de documentos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		itemRepo repository.DocumentItemRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Resultados de un escaneo para métricas.
const (
	ScanResultCreated  = "created"
	ScanResultMerged   = "merged"
	ScanResultRejected = "rejected"
)

// Recorder registra métricas del motor de documentos.
type Recorder interface {
	DocumentCreated(docType entity.DocumentType)
	ItemScanned(result string)
	StatusChanged(status string)
}

// NopRecorder descarta las métricas.
type NopRecorder struct{}

func (NopRecorder) DocumentCreated(entity.DocumentType) {}
func (NopRecorder) ItemScanned(string)                  {}
func (NopRecorder) StatusChanged(string)                {}
