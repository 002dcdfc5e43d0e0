package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes de inventario.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de lectura para reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// CompletedInventories carga los inventarios completados con sus posiciones en una sola consulta.
// Los documentos sin posiciones se incluyen con Lines vacío.
func (r *ReportRepo) CompletedInventories(ctx context.Context, organizationID string, from, to *time.Time) ([]inventory.CountSnapshot, error) {
	query := `
		SELECT d.id, d.number, d.document_date, d.created_at,
		       di.product_id, p.name, p.barcode, p.unit, di.quantity_expected, di.quantity_actual
		FROM documents d
		LEFT JOIN document_items di ON di.document_id = d.id
		LEFT JOIN products p ON p.id = di.product_id
		WHERE d.organization_id = $1
		  AND d.type = $2
		  AND d.status = $3
		  AND ($4::timestamptz IS NULL OR d.created_at >= $4)
		  AND ($5::timestamptz IS NULL OR d.created_at <= $5)
		ORDER BY d.created_at, d.id, di.created_at, di.id`
	rows, err := r.q.Query(ctx, query, organizationID,
		string(entity.DocumentTypeInventory), entity.DocumentStatusCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("query completed inventories: %w", err)
	}
	defer rows.Close()

	var out []inventory.CountSnapshot
	for rows.Next() {
		var (
			snap                           inventory.CountSnapshot
			productID, name, barcode, unit *string
			expected, actual               decimal.NullDecimal
		)
		if err := rows.Scan(&snap.DocumentID, &snap.Number, &snap.DocumentDate, &snap.CreatedAt,
			&productID, &name, &barcode, &unit, &expected, &actual); err != nil {
			return nil, fmt.Errorf("scan completed inventory: %w", err)
		}
		if n := len(out); n == 0 || out[n-1].DocumentID != snap.DocumentID {
			out = append(out, snap)
		}
		if productID == nil {
			continue
		}
		last := &out[len(out)-1]
		last.Lines = append(last.Lines, inventory.CountLine{
			ProductID:   *productID,
			ProductName: fromNullable(name),
			Barcode:     fromNullable(barcode),
			Unit:        fromNullable(unit),
			Expected:    expected.Decimal,
			Actual:      actual.Decimal,
		})
	}
	return out, rows.Err()
}

// DocumentSummary cuenta documentos por tipo y estado con la última fecha de creación.
func (r *ReportRepo) DocumentSummary(ctx context.Context, organizationID string, from, to *time.Time) ([]inventory.DocumentSummaryRow, error) {
	query := `
		SELECT type, status, COUNT(*), MAX(created_at)
		FROM documents
		WHERE organization_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		GROUP BY type, status
		ORDER BY type, status`
	rows, err := r.q.Query(ctx, query, organizationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query document summary: %w", err)
	}
	defer rows.Close()
	var out []inventory.DocumentSummaryRow
	for rows.Next() {
		var row inventory.DocumentSummaryRow
		if err := rows.Scan(&row.Type, &row.Status, &row.Count, &row.LastCreatedAt); err != nil {
			return nil, fmt.Errorf("scan document summary: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
