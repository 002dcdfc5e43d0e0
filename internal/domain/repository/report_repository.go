package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
)

// ReportRepository define el puerto de lectura para reportes (solo lectura, sin mutaciones).
type ReportRepository interface {
	// CompletedInventories devuelve los inventarios completados de la organización con created_at en [from, to].
	CompletedInventories(ctx context.Context, organizationID string, from, to *time.Time) ([]inventory.CountSnapshot, error)
	// DocumentSummary cuenta documentos por tipo y estado con created_at en [from, to].
	DocumentSummary(ctx context.Context, organizationID string, from, to *time.Time) ([]inventory.DocumentSummaryRow, error)
}
