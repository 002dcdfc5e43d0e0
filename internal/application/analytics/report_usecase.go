// Package analytics contiene los casos de uso de reportes sobre documentos: diferencias de inventario,
// estadísticas mensuales, productos más contados y resumen de documentos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// ReportUseCase proyecciones de solo lectura sobre inventarios completados.
//
// Fuente de datos: ReportRepository (consultas read-only). Todo el cálculo vive en domain/inventory.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	orgRepo    repository.OrganizationRepository
	exporters  map[string]Exporter
	defaultTop int
	log        zerolog.Logger
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso. defaultTop <= 0 usa inventory.DefaultTopProducts.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	orgRepo repository.OrganizationRepository,
	defaultTop int,
	log zerolog.Logger,
	exporters ...Exporter,
) *ReportUseCase {
	byFormat := make(map[string]Exporter, len(exporters))
	for _, e := range exporters {
		byFormat[e.Format] = e
	}
	return &ReportUseCase{
		reportRepo: reportRepo,
		orgRepo:    orgRepo,
		exporters:  byFormat,
		defaultTop: inventory.ClampTop(defaultTop),
		log:        log.With().Str("component", "reports").Logger(),
		now:        time.Now,
	}
}

// Discrepancies devuelve las posiciones con diferencia de los inventarios completados,
// ordenadas por diferencia absoluta descendente.
func (uc *ReportUseCase) Discrepancies(ctx context.Context, organizationID string, period dto.ReportPeriod) (*dto.DiscrepancyReportDTO, error) {
	org, snapshots, err := uc.load(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}
	rows := inventory.Discrepancies(snapshots)
	out := &dto.DiscrepancyReportDTO{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		Period:           period,
		GeneratedAt:      uc.now(),
		TotalRows:        len(rows),
		Rows:             make([]dto.DiscrepancyRowDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.DiscrepancyRowDTO{
			DocumentID:         r.DocumentID,
			DocumentNumber:     r.DocumentNumber,
			DocumentDate:       r.DocumentDate,
			ProductID:          r.ProductID,
			ProductName:        r.ProductName,
			Barcode:            r.Barcode,
			Unit:               r.Unit,
			Expected:           r.Expected,
			Actual:             r.Actual,
			Difference:         r.Difference,
			AbsoluteDifference: r.AbsoluteDifference,
		})
	}
	uc.log.Info().Str("organization_id", org.ID).Int("rows", len(rows)).Msg("reporte de diferencias generado")
	return out, nil
}

// Statistics devuelve totales, tasa de diferencias (%) y desglose mensual.
func (uc *ReportUseCase) Statistics(ctx context.Context, organizationID string, period dto.ReportPeriod) (*dto.InventoryStatisticsDTO, error) {
	org, snapshots, err := uc.load(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}
	stats := inventory.ComputeStatistics(snapshots)
	out := &dto.InventoryStatisticsDTO{
		OrganizationID:              org.ID,
		OrganizationName:            org.Name,
		Period:                      period,
		TotalInventories:            stats.TotalInventories,
		TotalItems:                  stats.TotalItems,
		TotalItemsWithDiscrepancies: stats.DiscrepantItems,
		AverageDiscrepancyRate:      stats.DiscrepancyRate,
		Monthly:                     make([]dto.PeriodStatisticsDTO, 0, len(stats.Monthly)),
	}
	for _, m := range stats.Monthly {
		out.Monthly = append(out.Monthly, dto.PeriodStatisticsDTO{
			Period:          m.Period,
			Inventories:     m.Inventories,
			Items:           m.Items,
			DiscrepantItems: m.DiscrepantItems,
		})
	}
	return out, nil
}

// MostScanned devuelve los productos con más posiciones en inventarios completados.
// top <= 0 usa el valor configurado; el máximo es inventory.MaxTopProducts.
func (uc *ReportUseCase) MostScanned(ctx context.Context, organizationID string, top int) (*dto.MostScannedReportDTO, error) {
	if top <= 0 {
		top = uc.defaultTop
	}
	top = inventory.ClampTop(top)
	org, snapshots, err := uc.load(ctx, organizationID, dto.ReportPeriod{})
	if err != nil {
		return nil, err
	}
	stats := inventory.MostScanned(snapshots, top)
	out := &dto.MostScannedReportDTO{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		Top:              top,
		Products:         make([]dto.ProductScanStatsDTO, 0, len(stats)),
	}
	for _, p := range stats {
		out.Products = append(out.Products, dto.ProductScanStatsDTO{
			ProductID:          p.ProductID,
			ProductName:        p.ProductName,
			Barcode:            p.Barcode,
			Unit:               p.Unit,
			ScanCount:          p.ScanCount,
			TotalExpected:      p.TotalExpected,
			TotalActual:        p.TotalActual,
			AverageDiscrepancy: p.AverageDiscrepancy,
		})
	}
	return out, nil
}

// DocumentSummary cuenta los documentos por tipo y estado en el periodo.
func (uc *ReportUseCase) DocumentSummary(ctx context.Context, organizationID string, period dto.ReportPeriod) (*dto.DocumentSummaryDTO, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}
	org, err := uc.organization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reportRepo.DocumentSummary(ctx, organizationID, period.From, period.To)
	if err != nil {
		return nil, err
	}
	out := &dto.DocumentSummaryDTO{
		OrganizationID:   org.ID,
		OrganizationName: org.Name,
		Period:           period,
		Rows:             make([]dto.DocumentSummaryRowDTO, 0, len(rows)),
	}
	for _, r := range rows {
		out.TotalDocuments += r.Count
		out.Rows = append(out.Rows, dto.DocumentSummaryRowDTO{
			Type:          r.Type,
			Status:        r.Status,
			Count:         r.Count,
			LastCreatedAt: r.LastCreatedAt,
		})
	}
	return out, nil
}

// ExportDiscrepancies genera el reporte de diferencias en el formato pedido (pdf | xlsx).
func (uc *ReportUseCase) ExportDiscrepancies(ctx context.Context, organizationID string, period dto.ReportPeriod, format string) (*dto.ReportFile, error) {
	exporter, ok := uc.exporters[format]
	if !ok {
		return nil, domain.NewValidationError("formato de exportación no soportado: %q", format)
	}
	report, err := uc.Discrepancies(ctx, organizationID, period)
	if err != nil {
		return nil, err
	}
	content, err := exporter.Renderer.RenderDiscrepancies(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("exportar diferencias (%s): %w", format, err)
	}
	uc.log.Info().Str("organization_id", organizationID).Str("format", format).Int("bytes", len(content)).Msg("reporte exportado")
	return &dto.ReportFile{
		Filename:    fmt.Sprintf("diferencias-%s.%s", report.GeneratedAt.Format("20060102-150405"), format),
		ContentType: exporter.ContentType,
		Content:     content,
	}, nil
}

func (uc *ReportUseCase) load(ctx context.Context, organizationID string, period dto.ReportPeriod) (*entity.Organization, []inventory.CountSnapshot, error) {
	if err := validatePeriod(period); err != nil {
		return nil, nil, err
	}
	org, err := uc.organization(ctx, organizationID)
	if err != nil {
		return nil, nil, err
	}
	snapshots, err := uc.reportRepo.CompletedInventories(ctx, organizationID, period.From, period.To)
	if err != nil {
		return nil, nil, err
	}
	return org, snapshots, nil
}

func (uc *ReportUseCase) organization(ctx context.Context, organizationID string) (*entity.Organization, error) {
	org, err := uc.orgRepo.GetByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.NotFound("organización", organizationID)
	}
	return org, nil
}

func validatePeriod(p dto.ReportPeriod) error {
	if p.From != nil && p.To != nil && p.From.After(*p.To) {
		return domain.NewValidationError("el inicio del periodo es posterior al fin")
	}
	return nil
}
