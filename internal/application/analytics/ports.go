package analytics

import (
	"context"

	"github.com/jhoicas/inventario-docs/internal/application/dto"
)

// Formatos de exportación del reporte de diferencias.
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// DiscrepancyRenderer genera el archivo de un reporte de diferencias (PDF, XLSX).
type DiscrepancyRenderer interface {
	RenderDiscrepancies(ctx context.Context, report *dto.DiscrepancyReportDTO) ([]byte, error)
}

// Exporter asocia un formato con su renderer y tipo MIME.
type Exporter struct {
	Format      string
	ContentType string
	Renderer    DiscrepancyRenderer
}
