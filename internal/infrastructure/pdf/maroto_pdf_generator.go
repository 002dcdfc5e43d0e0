// Package pdf genera el reporte de diferencias de inventario en PDF.
//
// Layout de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización          │  Período + Fecha generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Doc | Fecha | Producto | Código | Esp. | Real | Dif. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: posiciones con diferencia                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-docs/internal/application/analytics"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorNegative = &props.Color{Red: 170, Green: 30, Blue: 30}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.DiscrepancyRenderer = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa analytics.DiscrepancyRenderer usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// RenderDiscrepancies genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderDiscrepancies(_ context.Context, report *dto.DiscrepancyReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de diferencias de inventario", true).
		WithAuthor(report.OrganizationName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Rows) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin diferencias en el período.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(report.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: organización (izq) y período + fecha de generación (der).
func headerRow(report *dto.DiscrepancyReportDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(report.OrganizationName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("REPORTE DE DIFERENCIAS DE INVENTARIO", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Período: "+periodLabel(report.Period), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Generado: "+report.GeneratedAt.Format(dateLayout+" 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Documento", 2, align.Left),
		h("Fecha", 1, align.Center),
		h("Producto", 3, align.Left),
		h("Código", 2, align.Left),
		h("Esperado", 1, align.Right),
		h("Real", 1, align.Right),
		h("Diferencia", 2, align.Right),
	)
}

// tableDetailRows: una fila por posición con diferencia.
func tableDetailRows(rows []dto.DiscrepancyRowDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	for _, r := range rows {
		diffProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if r.Difference.IsNegative() {
			diffProps.Color = colorNegative
		}
		result = append(result, row.New(7).Add(
			cell(r.DocumentNumber, 2, align.Left),
			cell(r.DocumentDate.Format(dateLayout), 1, align.Center),
			cell(r.ProductName, 3, align.Left),
			cell(nonEmpty(r.Barcode, "-"), 2, align.Left),
			cell(r.Expected.String()+" "+r.Unit, 1, align.Right),
			cell(r.Actual.String()+" "+r.Unit, 1, align.Right),
			col.New(2).Add(text.New(signed(r.Difference.String()), diffProps)),
		))
	}
	return result
}

func summaryRow(report *dto.DiscrepancyReportDTO) core.Row {
	return row.New(10).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Posiciones con diferencia: %d", report.TotalRows),
			props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3, Right: 1},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func periodLabel(p dto.ReportPeriod) string {
	from, to := "inicio", "hoy"
	if p.From != nil {
		from = p.From.Format(dateLayout)
	}
	if p.To != nil {
		to = p.To.Format(dateLayout)
	}
	return from + " - " + to
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// signed antepone "+" a diferencias positivas.
func signed(s string) string {
	if s != "0" && s[0] != '-' {
		return "+" + s
	}
	return s
}
