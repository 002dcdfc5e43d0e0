package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de MostScanned.
const (
	DefaultTopProducts = 10
	MaxTopProducts     = 100
)

// CountLine posición de un inventario completado con los datos del producto ya resueltos.
type CountLine struct {
	ProductID   string
	ProductName string
	Barcode     string
	Unit        string
	Expected    decimal.Decimal
	Actual      decimal.Decimal
}

// CountSnapshot inventario completado tal como lo consume el reporte de diferencias.
type CountSnapshot struct {
	DocumentID   string
	Number       string
	DocumentDate time.Time
	CreatedAt    time.Time
	Lines        []CountLine
}

// DiscrepancyRow una posición con cantidad real distinta de la esperada.
type DiscrepancyRow struct {
	DocumentID         string
	DocumentNumber     string
	DocumentDate       time.Time
	ProductID          string
	ProductName        string
	Barcode            string
	Unit               string
	Expected           decimal.Decimal
	Actual             decimal.Decimal
	Difference         decimal.Decimal // actual - expected
	AbsoluteDifference decimal.Decimal
}

// PeriodStatistics conteos de un mes (clave YYYY-MM).
type PeriodStatistics struct {
	Period          string
	Inventories     int
	Items           int
	DiscrepantItems int
}

// Statistics agregados sobre inventarios completados.
type Statistics struct {
	TotalInventories int
	TotalItems       int
	DiscrepantItems  int
	DiscrepancyRate  decimal.Decimal // porcentaje, 2 decimales
	Monthly          []PeriodStatistics
}

// ProductScanStats agregados de un producto sobre todos los inventarios completados.
type ProductScanStats struct {
	ProductID          string
	ProductName        string
	Barcode            string
	Unit               string
	ScanCount          int
	TotalExpected      decimal.Decimal
	TotalActual        decimal.Decimal
	AverageDiscrepancy decimal.Decimal // media de |actual - expected|
}

// Discrepancies aplana las posiciones con diferencia y las ordena por diferencia absoluta descendente.
func Discrepancies(snapshots []CountSnapshot) []DiscrepancyRow {
	rows := make([]DiscrepancyRow, 0)
	for _, s := range snapshots {
		for _, l := range s.Lines {
			if l.Expected.Equal(l.Actual) {
				continue
			}
			diff := l.Actual.Sub(l.Expected)
			rows = append(rows, DiscrepancyRow{
				DocumentID:         s.DocumentID,
				DocumentNumber:     s.Number,
				DocumentDate:       s.DocumentDate,
				ProductID:          l.ProductID,
				ProductName:        l.ProductName,
				Barcode:            l.Barcode,
				Unit:               l.Unit,
				Expected:           l.Expected,
				Actual:             l.Actual,
				Difference:         diff,
				AbsoluteDifference: diff.Abs(),
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AbsoluteDifference.GreaterThan(rows[j].AbsoluteDifference)
	})
	return rows
}

// ComputeStatistics calcula totales, tasa de diferencias y el desglose mensual (UTC, ascendente).
func ComputeStatistics(snapshots []CountSnapshot) Statistics {
	stats := Statistics{DiscrepancyRate: decimal.Zero, Monthly: make([]PeriodStatistics, 0)}
	byPeriod := make(map[string]*PeriodStatistics)
	for _, s := range snapshots {
		period := s.CreatedAt.UTC().Format("2006-01")
		p, ok := byPeriod[period]
		if !ok {
			p = &PeriodStatistics{Period: period}
			byPeriod[period] = p
		}
		stats.TotalInventories++
		p.Inventories++
		for _, l := range s.Lines {
			stats.TotalItems++
			p.Items++
			if !l.Expected.Equal(l.Actual) {
				stats.DiscrepantItems++
				p.DiscrepantItems++
			}
		}
	}
	stats.DiscrepancyRate = Rate(stats.DiscrepantItems, stats.TotalItems)
	for _, p := range byPeriod {
		stats.Monthly = append(stats.Monthly, *p)
	}
	sort.Slice(stats.Monthly, func(i, j int) bool { return stats.Monthly[i].Period < stats.Monthly[j].Period })
	return stats
}

// Rate devuelve part/total*100 redondeado a 2 decimales; 0 si total es 0.
func Rate(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
}

// ClampTop normaliza el parámetro top de MostScanned.
func ClampTop(top int) int {
	if top <= 0 {
		return DefaultTopProducts
	}
	if top > MaxTopProducts {
		return MaxTopProducts
	}
	return top
}

// MostScanned agrupa por producto y devuelve los top productos con más posiciones contadas.
// Empates por nombre de producto.
func MostScanned(snapshots []CountSnapshot, top int) []ProductScanStats {
	top = ClampTop(top)
	byProduct := make(map[string]*ProductScanStats)
	absSum := make(map[string]decimal.Decimal)
	for _, s := range snapshots {
		for _, l := range s.Lines {
			p, ok := byProduct[l.ProductID]
			if !ok {
				p = &ProductScanStats{
					ProductID:     l.ProductID,
					ProductName:   l.ProductName,
					Barcode:       l.Barcode,
					Unit:          l.Unit,
					TotalExpected: decimal.Zero,
					TotalActual:   decimal.Zero,
				}
				byProduct[l.ProductID] = p
			}
			p.ScanCount++
			p.TotalExpected = p.TotalExpected.Add(l.Expected)
			p.TotalActual = p.TotalActual.Add(l.Actual)
			absSum[l.ProductID] = absSum[l.ProductID].Add(l.Actual.Sub(l.Expected).Abs())
		}
	}
	out := make([]ProductScanStats, 0, len(byProduct))
	for id, p := range byProduct {
		p.AverageDiscrepancy = absSum[id].Div(decimal.NewFromInt(int64(p.ScanCount))).Round(QuantityScale)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScanCount != out[j].ScanCount {
			return out[i].ScanCount > out[j].ScanCount
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > top {
		out = out[:top]
	}
	return out
}

// DocumentSummaryRow cantidad de documentos por tipo y estado en un periodo.
type DocumentSummaryRow struct {
	Type          string
	Status        string
	Count         int
	LastCreatedAt time.Time
}
