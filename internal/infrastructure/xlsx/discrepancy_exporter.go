// Package xlsx exporta el reporte de diferencias de inventario a Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-docs/internal/application/analytics"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
)

// SheetName hoja donde se escribe el reporte.
const SheetName = "Diferencias"

var headers = []string{
	"Documento", "Fecha", "Producto", "Código de barras", "Unidad", "Esperado", "Real", "Diferencia",
}

var _ analytics.DiscrepancyRenderer = (*ExcelizeExporter)(nil)

// ExcelizeExporter implementa analytics.DiscrepancyRenderer usando excelize.
type ExcelizeExporter struct{}

// NewExcelizeExporter construye el exportador.
func NewExcelizeExporter() *ExcelizeExporter { return &ExcelizeExporter{} }

// RenderDiscrepancies escribe una fila de encabezado y una fila por diferencia. Las cantidades
// se escriben como números para que la hoja pueda sumarlas.
func (e *ExcelizeExporter) RenderDiscrepancies(_ context.Context, report *dto.DiscrepancyReportDTO) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: encabezado: %w", err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	for i, r := range report.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []interface{}{
			r.DocumentNumber,
			r.DocumentDate.Format("2006-01-02"),
			r.ProductName,
			r.Barcode,
			r.Unit,
			r.Expected.InexactFloat64(),
			r.Actual.InexactFloat64(),
			r.Difference.InexactFloat64(),
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
