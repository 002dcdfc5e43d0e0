package xlsx_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/infrastructure/xlsx"
)

func TestRenderDiscrepancies_WritesHeaderAndRows(t *testing.T) {
	report := &dto.DiscrepancyReportDTO{
		OrganizationName: "Bodegas del Norte",
		TotalRows:        2,
		Rows: []dto.DiscrepancyRowDTO{
			{
				DocumentNumber: "INV-2610-0001",
				DocumentDate:   time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
				ProductName:    "Arroz 1kg",
				Barcode:        "7701234",
				Unit:           "und",
				Expected:       decimal.NewFromInt(10),
				Actual:         decimal.NewFromInt(7),
				Difference:     decimal.NewFromInt(-3),
			},
			{
				DocumentNumber: "INV-2610-0001",
				DocumentDate:   time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
				ProductName:    "Aceite",
				Unit:           "lt",
				Expected:       decimal.RequireFromString("2.5"),
				Actual:         decimal.RequireFromString("3"),
				Difference:     decimal.RequireFromString("0.5"),
			},
		},
	}

	out, err := xlsx.NewExcelizeExporter().RenderDiscrepancies(context.Background(), report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Documento", rows[0][0])
	assert.Equal(t, "Diferencia", rows[0][7])
	assert.Equal(t, "INV-2610-0001", rows[1][0])
	assert.Equal(t, "2026-10-03", rows[1][1])
	assert.Equal(t, "-3", rows[1][7])
	assert.Equal(t, "0.5", rows[2][7])
}

func TestRenderDiscrepancies_EmptyReportHasOnlyHeader(t *testing.T) {
	out, err := xlsx.NewExcelizeExporter().RenderDiscrepancies(context.Background(), &dto.DiscrepancyReportDTO{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(xlsx.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
