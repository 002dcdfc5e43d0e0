package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, organization_id, type, number, status, document_date, comment, created_by_user_id,
	warehouse_id, source_warehouse_id, destination_warehouse_id, created_at`

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de persistencia para cabeceras de documento.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create inserta la cabecera. Con ON CONFLICT DO NOTHING un número repetido no aborta la
// transacción en curso y se informa como domain.ErrDuplicate.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, organization_id, type, number, status, document_date, comment, created_by_user_id,
			warehouse_id, source_warehouse_id, destination_warehouse_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (organization_id, number) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		doc.ID, doc.OrganizationID, string(doc.Type), doc.Number, doc.Status, doc.DocumentDate,
		nullable(doc.Comment), nullable(doc.CreatedByUserID),
		nullable(doc.WarehouseID), nullable(doc.SourceWarehouseID), nullable(doc.DestinationWarehouseID),
		doc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// GetByID obtiene la cabecera de un documento por ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// GetForUpdate obtiene la cabecera bloqueando la fila hasta el fin de la transacción.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *DocumentRepo) get(ctx context.Context, query, id string) (*entity.Document, error) {
	doc, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// ListByOrganization lista cabeceras de la organización, más recientes primero.
func (r *DocumentRepo) ListByOrganization(ctx context.Context, organizationID string, filter repository.DocumentFilter) ([]*entity.Document, error) {
	var docType *string
	if filter.Type != "" {
		t := string(filter.Type)
		docType = &t
	}
	query := `
		SELECT ` + documentColumns + ` FROM documents
		WHERE organization_id = $1
		  AND ($2::text IS NULL OR type = $2)
		  AND ($3::timestamptz IS NULL OR created_at > $3)
		ORDER BY created_at DESC, id
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, organizationID, docType, filter.CreatedAfter, limitOrNull(filter.Limit))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado solo si el actual es from.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id, from, to string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE documents SET status = $3 WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		return false, fmt.Errorf("update document status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Delete elimina el documento; document_items se borra por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("documento", id)
	}
	return nil
}

// NextSequence incrementa el contador de (organización, tipo, año) y devuelve el nuevo valor.
// La fila del contador queda bloqueada hasta el fin de la transacción.
func (r *DocumentRepo) NextSequence(ctx context.Context, organizationID string, docType entity.DocumentType, year int) (int, error) {
	query := `
		INSERT INTO document_counters (organization_id, type, year, last_value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (organization_id, type, year)
		DO UPDATE SET last_value = document_counters.last_value + 1
		RETURNING last_value`
	var seq int
	if err := r.q.QueryRow(ctx, query, organizationID, string(docType), year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next document sequence: %w", err)
	}
	return seq, nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var docType string
	var comment, createdBy, warehouseID, sourceID, destinationID *string
	if err := row.Scan(&d.ID, &d.OrganizationID, &docType, &d.Number, &d.Status, &d.DocumentDate,
		&comment, &createdBy, &warehouseID, &sourceID, &destinationID, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Type = entity.DocumentType(docType)
	d.Comment = fromNullable(comment)
	d.CreatedByUserID = fromNullable(createdBy)
	d.WarehouseID = fromNullable(warehouseID)
	d.SourceWarehouseID = fromNullable(sourceID)
	d.DestinationWarehouseID = fromNullable(destinationID)
	return &d, nil
}
