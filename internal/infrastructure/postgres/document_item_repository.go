package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

var _ repository.DocumentItemRepository = (*DocumentItemRepo)(nil)

const documentItemColumns = `id, document_id, product_id, quantity_expected, quantity_actual, created_at`

// DocumentItemRepo implementación del puerto DocumentItemRepository sobre PostgreSQL (usable con pool o tx).
type DocumentItemRepo struct {
	q Querier
}

// NewDocumentItemRepository construye el adaptador de persistencia para posiciones de documento.
func NewDocumentItemRepository(q Querier) *DocumentItemRepo {
	return &DocumentItemRepo{q: q}
}

// Create inserta una posición. Si el producto ya está en el documento devuelve domain.ErrDuplicate
// sin abortar la transacción.
func (r *DocumentItemRepo) Create(ctx context.Context, item *entity.DocumentItem) error {
	query := `
		INSERT INTO document_items (id, document_id, product_id, quantity_expected, quantity_actual, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (document_id, product_id) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		item.ID, item.DocumentID, item.ProductID, item.QuantityExpected, item.QuantityActual, item.CreatedAt,
	)
	if err != nil {
		return quantityError("insert document item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// Accumulate inserta la posición o suma QuantityActual a la existente en una sola sentencia.
// xmax = 0 solo para filas recién insertadas.
func (r *DocumentItemRepo) Accumulate(ctx context.Context, item *entity.DocumentItem) (*entity.DocumentItem, bool, error) {
	query := `
		INSERT INTO document_items (id, document_id, product_id, quantity_expected, quantity_actual, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (document_id, product_id)
		DO UPDATE SET quantity_actual = document_items.quantity_actual + EXCLUDED.quantity_actual
		RETURNING ` + documentItemColumns + `, (xmax = 0)`
	var stored entity.DocumentItem
	var created bool
	err := r.q.QueryRow(ctx, query,
		item.ID, item.DocumentID, item.ProductID, item.QuantityExpected, item.QuantityActual, item.CreatedAt,
	).Scan(&stored.ID, &stored.DocumentID, &stored.ProductID, &stored.QuantityExpected,
		&stored.QuantityActual, &stored.CreatedAt, &created)
	if err != nil {
		return nil, false, quantityError("accumulate document item", err)
	}
	return &stored, created, nil
}

// GetByID obtiene una posición por ID.
func (r *DocumentItemRepo) GetByID(ctx context.Context, id string) (*entity.DocumentItem, error) {
	query := `SELECT ` + documentItemColumns + ` FROM document_items WHERE id = $1`
	item, err := scanDocumentItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document item: %w", err)
	}
	return item, nil
}

// ListByDocument devuelve las posiciones del documento en orden de creación.
func (r *DocumentItemRepo) ListByDocument(ctx context.Context, documentID string) ([]entity.DocumentItem, error) {
	query := `
		SELECT ` + documentItemColumns + ` FROM document_items
		WHERE document_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	items := make([]entity.DocumentItem, 0)
	for rows.Next() {
		item, err := scanDocumentItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// ListByDocuments carga en una consulta las posiciones de varios documentos, agrupadas por documento.
func (r *DocumentItemRepo) ListByDocuments(ctx context.Context, documentIDs []string) (map[string][]entity.DocumentItem, error) {
	out := make(map[string][]entity.DocumentItem, len(documentIDs))
	if len(documentIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT ` + documentItemColumns + ` FROM document_items
		WHERE document_id = ANY($1::uuid[])
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, documentIDs)
	if err != nil {
		return nil, fmt.Errorf("list document items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		item, err := scanDocumentItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}
		out[item.DocumentID] = append(out[item.DocumentID], *item)
	}
	return out, rows.Err()
}

// UpdateActual reemplaza la cantidad real de una posición.
func (r *DocumentItemRepo) UpdateActual(ctx context.Context, id string, actual decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE document_items SET quantity_actual = $2 WHERE id = $1`, id, actual)
	if err != nil {
		return quantityError("update document item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("posición", id)
	}
	return nil
}

// Delete elimina una posición.
func (r *DocumentItemRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM document_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("posición", id)
	}
	return nil
}

func scanDocumentItem(row pgx.Row) (*entity.DocumentItem, error) {
	var it entity.DocumentItem
	if err := row.Scan(&it.ID, &it.DocumentID, &it.ProductID, &it.QuantityExpected,
		&it.QuantityActual, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}
