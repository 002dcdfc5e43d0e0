package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportPeriod rango opcional [from, to] sobre created_at de los documentos.
type ReportPeriod struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// DiscrepancyRowDTO una posición de inventario con diferencia entre esperado y real.
type DiscrepancyRowDTO struct {
	DocumentID         string          `json:"document_id"`
	DocumentNumber     string          `json:"document_number"`
	DocumentDate       time.Time       `json:"document_date"`
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Barcode            string          `json:"barcode,omitempty"`
	Unit               string          `json:"unit"`
	Expected           decimal.Decimal `json:"quantity_expected"`
	Actual             decimal.Decimal `json:"quantity_actual"`
	Difference         decimal.Decimal `json:"difference"`          // actual - esperado
	AbsoluteDifference decimal.Decimal `json:"absolute_difference"` // |actual - esperado|
}

// DiscrepancyReportDTO respuesta de GET .../reports/inventory/discrepancies.
type DiscrepancyReportDTO struct {
	OrganizationID   string              `json:"organization_id"`
	OrganizationName string              `json:"organization_name"`
	Period           ReportPeriod        `json:"period"`
	GeneratedAt      time.Time           `json:"generated_at"`
	TotalRows        int                 `json:"total_rows"`
	Rows             []DiscrepancyRowDTO `json:"rows"`
}

// PeriodStatisticsDTO conteos de un mes (YYYY-MM).
type PeriodStatisticsDTO struct {
	Period          string `json:"period"`
	Inventories     int    `json:"total_inventories"`
	Items           int    `json:"total_items"`
	DiscrepantItems int    `json:"total_items_with_discrepancies"`
}

// InventoryStatisticsDTO respuesta de GET .../reports/inventory/statistics.
type InventoryStatisticsDTO struct {
	OrganizationID              string                `json:"organization_id"`
	OrganizationName            string                `json:"organization_name"`
	Period                      ReportPeriod          `json:"period"`
	TotalInventories            int                   `json:"total_inventories"`
	TotalItems                  int                   `json:"total_items"`
	TotalItemsWithDiscrepancies int                   `json:"total_items_with_discrepancies"`
	AverageDiscrepancyRate      decimal.Decimal       `json:"average_discrepancy_rate"` // porcentaje
	Monthly                     []PeriodStatisticsDTO `json:"monthly"`
}

// ProductScanStatsDTO agregados de un producto en inventarios completados.
type ProductScanStatsDTO struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Barcode            string          `json:"barcode,omitempty"`
	Unit               string          `json:"unit"`
	ScanCount          int             `json:"scan_count"`
	TotalExpected      decimal.Decimal `json:"total_expected"`
	TotalActual        decimal.Decimal `json:"total_actual"`
	AverageDiscrepancy decimal.Decimal `json:"average_discrepancy"`
}

// MostScannedReportDTO respuesta de GET .../reports/products/most-scanned.
type MostScannedReportDTO struct {
	OrganizationID   string                `json:"organization_id"`
	OrganizationName string                `json:"organization_name"`
	Top              int                   `json:"top"`
	Products         []ProductScanStatsDTO `json:"products"`
}

// DocumentSummaryRowDTO documentos de un tipo y estado.
type DocumentSummaryRowDTO struct {
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Count         int       `json:"count"`
	LastCreatedAt time.Time `json:"last_created_at"`
}

// DocumentSummaryDTO respuesta de GET .../reports/documents/summary.
type DocumentSummaryDTO struct {
	OrganizationID   string                  `json:"organization_id"`
	OrganizationName string                  `json:"organization_name"`
	Period           ReportPeriod            `json:"period"`
	TotalDocuments   int                     `json:"total_documents"`
	Rows             []DocumentSummaryRowDTO `json:"rows"`
}

// ReportFile archivo exportado.
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
