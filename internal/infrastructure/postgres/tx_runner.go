package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-docs/internal/application/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de documentos atados a la tx y hace Commit o Rollback.
// Los deadlocks y fallas de serialización se devuelven como domain.ErrConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	itemRepo repository.DocumentItemRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	docRepo := NewDocumentRepository(tx)
	itemRepo := NewDocumentItemRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(docRepo, itemRepo, productRepo); err != nil {
		return conflictError("transaction", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return conflictError("commit", fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
