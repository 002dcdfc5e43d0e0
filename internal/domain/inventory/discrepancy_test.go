package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
)

func line(productID, expected, actual string) inventory.CountLine {
	return inventory.CountLine{
		ProductID:   productID,
		ProductName: "Producto " + productID,
		Expected:    decimal.RequireFromString(expected),
		Actual:      decimal.RequireFromString(actual),
	}
}

func snapshot(id string, createdAt time.Time, lines ...inventory.CountLine) inventory.CountSnapshot {
	return inventory.CountSnapshot{DocumentID: id, Number: "INV-" + id, CreatedAt: createdAt, DocumentDate: createdAt, Lines: lines}
}

func TestDiscrepancies_UnaFilaConDiferencia(t *testing.T) {
	snaps := []inventory.CountSnapshot{
		snapshot("1", time.Now(), line("a", "10", "8"), line("b", "5", "5")),
	}

	rows := inventory.Discrepancies(snaps)
	require.Len(t, rows, 1)
	assert.Equal(t, "a", rows[0].ProductID)
	assert.True(t, rows[0].Difference.Equal(decimal.NewFromInt(-2)), "diferencia = actual - esperado")
	assert.True(t, rows[0].AbsoluteDifference.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "INV-1", rows[0].DocumentNumber)
}

func TestDiscrepancies_OrdenPorDiferenciaAbsoluta(t *testing.T) {
	snaps := []inventory.CountSnapshot{
		snapshot("1", time.Now(), line("a", "10", "9"), line("b", "1", "8.5")),
		snapshot("2", time.Now(), line("c", "20", "16")),
	}

	rows := inventory.Discrepancies(snaps)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{rows[0].ProductID, rows[1].ProductID, rows[2].ProductID})
}

func TestDiscrepancies_SinInventarios(t *testing.T) {
	rows := inventory.Discrepancies(nil)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestComputeStatistics(t *testing.T) {
	snaps := []inventory.CountSnapshot{
		snapshot("1", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), line("a", "10", "8"), line("b", "5", "5")),
	}

	stats := inventory.ComputeStatistics(snaps)
	assert.Equal(t, 1, stats.TotalInventories)
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 1, stats.DiscrepantItems)
	assert.True(t, stats.DiscrepancyRate.Equal(decimal.NewFromInt(50)), "tasa esperada 50, obtenida %s", stats.DiscrepancyRate)
	require.Len(t, stats.Monthly, 1)
	assert.Equal(t, "2026-02", stats.Monthly[0].Period)
}

func TestComputeStatistics_SinPosicionesTasaCero(t *testing.T) {
	stats := inventory.ComputeStatistics(nil)
	assert.Equal(t, 0, stats.TotalItems)
	assert.True(t, stats.DiscrepancyRate.IsZero())
	assert.Empty(t, stats.Monthly)
}

func TestComputeStatistics_MesesAscendentesEnUTC(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	snaps := []inventory.CountSnapshot{
		snapshot("3", time.Date(2026, 3, 31, 22, 0, 0, 0, bogota), line("a", "1", "2")), // 2026-04 en UTC
		snapshot("1", time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC), line("a", "1", "1")),
		snapshot("2", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), line("a", "1", "1"), line("b", "3", "1")),
	}

	stats := inventory.ComputeStatistics(snaps)
	require.Len(t, stats.Monthly, 3)
	assert.Equal(t, "2025-12", stats.Monthly[0].Period)
	assert.Equal(t, "2026-01", stats.Monthly[1].Period)
	assert.Equal(t, "2026-04", stats.Monthly[2].Period)
	assert.Equal(t, 2, stats.Monthly[1].Items)
	assert.Equal(t, 1, stats.Monthly[1].DiscrepantItems)
	assert.True(t, stats.DiscrepancyRate.Equal(decimal.NewFromInt(50)))
}

func TestRate_Redondeo(t *testing.T) {
	assert.Equal(t, "33.33", inventory.Rate(1, 3).StringFixed(2))
	assert.Equal(t, "66.67", inventory.Rate(2, 3).StringFixed(2))
	assert.True(t, inventory.Rate(5, 0).IsZero())
}

func TestMostScanned(t *testing.T) {
	snaps := []inventory.CountSnapshot{
		snapshot("1", time.Now(), line("a", "10", "8"), line("b", "5", "5")),
		snapshot("2", time.Now(), line("a", "10", "11"), line("c", "1", "1")),
		snapshot("3", time.Now(), line("a", "4", "4")),
	}

	out := inventory.MostScanned(snaps, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ProductID)
	assert.Equal(t, 3, out[0].ScanCount)
	assert.True(t, out[0].TotalExpected.Equal(decimal.NewFromInt(24)))
	assert.True(t, out[0].TotalActual.Equal(decimal.NewFromInt(23)))
	assert.True(t, out[0].AverageDiscrepancy.Equal(decimal.NewFromInt(1)), "(2 + 1 + 0) / 3 = 1")
	assert.Equal(t, "b", out[1].ProductID, "empate resuelto por nombre")
}

func TestClampTop(t *testing.T) {
	assert.Equal(t, inventory.DefaultTopProducts, inventory.ClampTop(0))
	assert.Equal(t, inventory.MaxTopProducts, inventory.ClampTop(1000))
	assert.Equal(t, 7, inventory.ClampTop(7))
}
