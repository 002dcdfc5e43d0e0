package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appinventory "github.com/jhoicas/inventario-docs/internal/application/inventory"
	"github.com/jhoicas/inventario-docs/internal/application/usecase"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
)

const (
	orgA = "org-a"
	orgB = "org-b"
)

type fixture struct {
	store   *memStore
	metrics *countingRecorder
	uc      *appinventory.DocumentUseCase
}

func newFixture() *fixture {
	s := newMemStore()
	rec := newCountingRecorder()
	uc := appinventory.NewDocumentUseCase(
		memTxRunner{s}, memDocRepo{s}, memItemRepo{s}, memWarehouseRepo{s}, rec, zerolog.Nop(),
	)
	return &fixture{store: s, metrics: rec, uc: uc}
}

func (f *fixture) createDoc(t *testing.T, orgID string, typ entity.DocumentType) *entity.Document {
	t.Helper()
	doc, err := f.uc.CreateDocument(context.Background(), appinventory.CreateDocumentInput{
		OrganizationID:  orgID,
		Type:            typ,
		CreatedByUserID: "user-1",
	})
	require.NoError(t, err)
	return doc
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// CreateDocument y numeración
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDocument_BorradorConNumeroGenerado(t *testing.T) {
	f := newFixture()
	now := time.Now()

	first := f.createDoc(t, orgA, entity.DocumentTypeInventory)
	second := f.createDoc(t, orgA, entity.DocumentTypeInventory)
	receipt := f.createDoc(t, orgA, entity.DocumentTypeReceipt)

	assert.Equal(t, entity.DocumentStatusDraft, first.Status)
	assert.Equal(t, inventory.FormatNumber(entity.DocumentTypeInventory, now, 1), first.Number)
	assert.Equal(t, inventory.FormatNumber(entity.DocumentTypeInventory, now, 2), second.Number)
	assert.Equal(t, inventory.FormatNumber(entity.DocumentTypeReceipt, now, 1), receipt.Number,
		"el consecutivo es independiente por tipo")
	assert.False(t, first.DocumentDate.IsZero(), "la fecha del documento toma la de creación")
	assert.Equal(t, 3, f.metrics.created)
}

func TestCreateDocument_TipoDesconocido(t *testing.T) {
	f := newFixture()
	_, err := f.uc.CreateDocument(context.Background(), appinventory.CreateDocumentInput{
		OrganizationID: orgA,
		Type:           entity.DocumentType("devolucion"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateDocument_BodegaDeOtraOrganizacion(t *testing.T) {
	f := newFixture()
	foreign := f.store.addWarehouse(orgB, "central")

	_, err := f.uc.CreateDocument(context.Background(), appinventory.CreateDocumentInput{
		OrganizationID: orgA,
		Type:           entity.DocumentTypeReceipt,
		WarehouseID:    foreign.ID,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, domain.Reason(err), foreign.ID)
}

func TestCreateDocument_TrasladoMismaBodega(t *testing.T) {
	f := newFixture()
	wh := f.store.addWarehouse(orgA, "central")

	_, err := f.uc.CreateDocument(context.Background(), appinventory.CreateDocumentInput{
		OrganizationID:         orgA,
		Type:                   entity.DocumentTypeTransfer,
		SourceWarehouseID:      wh.ID,
		DestinationWarehouseID: wh.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateDocument_TrasladoValido(t *testing.T) {
	f := newFixture()
	src := f.store.addWarehouse(orgA, "central")
	dst := f.store.addWarehouse(orgA, "norte")

	doc, err := f.uc.CreateDocument(context.Background(), appinventory.CreateDocumentInput{
		OrganizationID:         orgA,
		Type:                   entity.DocumentTypeTransfer,
		SourceWarehouseID:      src.ID,
		DestinationWarehouseID: dst.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{src.ID, dst.ID}, doc.WarehouseRefs())
}

func TestCreateDocument_NumeroExplicitoDuplicado(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	in := appinventory.CreateDocumentInput{OrganizationID: orgA, Type: entity.DocumentTypeReceipt, Number: "ENT-MANUAL-1"}

	_, err := f.uc.CreateDocument(ctx, in)
	require.NoError(t, err)
	_, err = f.uc.CreateDocument(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.OrganizationID = orgB
	_, err = f.uc.CreateDocument(ctx, in)
	assert.NoError(t, err, "el número es único por organización")
}

func TestCreateDocument_NumeroGeneradoChocaConExplicito(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	taken := inventory.FormatNumber(entity.DocumentTypeInventory, time.Now(), 1)
	_, err := f.uc.CreateDocument(ctx, appinventory.CreateDocumentInput{
		OrganizationID: orgA, Type: entity.DocumentTypeInventory, Number: taken,
	})
	require.NoError(t, err)

	doc := f.createDoc(t, orgA, entity.DocumentTypeInventory)
	assert.Equal(t, inventory.FormatNumber(entity.DocumentTypeInventory, time.Now(), 2), doc.Number,
		"el consecutivo ocupado se salta")
}

func TestCreateDocument_ConcurrenteNumerosUnicosSinHuecos(t *testing.T) {
	f := newFixture()
	const n = 100

	var wg sync.WaitGroup
	numbers := make(chan string, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := f.uc.CreateDocument(context.Background(), appinventory.CreateDocumentInput{
				OrganizationID: orgA, Type: entity.DocumentTypeInventory,
			})
			if err != nil {
				errs <- err
				return
			}
			numbers <- doc.Number
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := make(map[string]bool, n)
	for num := range numbers {
		assert.False(t, seen[num], "número repetido: %s", num)
		seen[num] = true
	}
	require.Len(t, seen, n)
	now := time.Now()
	for i := 1; i <= n; i++ {
		assert.True(t, seen[inventory.FormatNumber(entity.DocumentTypeInventory, now, i)], "falta el consecutivo %d", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y eliminación
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDocument_NoExiste(t *testing.T) {
	f := newFixture()
	_, err := f.uc.GetDocument(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetOrganizationDocuments_FiltraPorTipoYOrganizacion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addProduct(orgA, "arroz", "111")
	inv := f.createDoc(t, orgA, entity.DocumentTypeInventory)
	f.createDoc(t, orgA, entity.DocumentTypeReceipt)
	f.createDoc(t, orgB, entity.DocumentTypeInventory)
	_, err := f.uc.ScanAndAdd(ctx, inv.ID, "111", qty("1"))
	require.NoError(t, err)

	all, err := f.uc.GetOrganizationDocuments(ctx, orgA, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyInv, err := f.uc.GetOrganizationDocuments(ctx, orgA, entity.DocumentTypeInventory)
	require.NoError(t, err)
	require.Len(t, onlyInv, 1)
	assert.Equal(t, inv.ID, onlyInv[0].ID)
	assert.Len(t, onlyInv[0].Items, 1, "cada documento trae sus posiciones")

	_, err = f.uc.GetOrganizationDocuments(ctx, orgA, entity.DocumentType("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeleteDocument_CascadaDePosiciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addProduct(orgA, "arroz", "111")
	f.store.addProduct(orgA, "frijol", "222")
	doc := f.createDoc(t, orgA, entity.DocumentTypeInventory)
	first, err := f.uc.ScanAndAdd(ctx, doc.ID, "111", qty("2"))
	require.NoError(t, err)
	second, err := f.uc.ScanAndAdd(ctx, doc.ID, "222", qty("3"))
	require.NoError(t, err)

	require.NoError(t, f.uc.DeleteDocument(ctx, doc.ID))

	_, err = f.uc.GetDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	for _, id := range []string{first.ID, second.ID} {
		_, err = f.uc.GetItem(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, "la posición %s debe eliminarse en cascada", id)
	}
	assert.Equal(t, 0, f.store.itemCount())
}

func TestDeleteDocument_CompletadoNoSeElimina(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.store.addProduct(orgA, "arroz", "111")
	doc := f.createDoc(t, orgA, entity.DocumentTypeReceipt)
	_, err := f.uc.ScanAndAdd(ctx, doc.ID, "111", qty("1"))
	require.NoError(t, err)
	_, err = f.uc.CompleteDocument(ctx, doc.ID)
	require.NoError(t, err)

	err = f.uc.DeleteDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.GetDocument(ctx, doc.ID)
	assert.NoError(t, err)
}

func TestDeleteDocument_CanceladoSeElimina(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	doc := f.createDoc(t, orgA, entity.DocumentTypeWriteOff)
	_, err := f.uc.CancelDocument(ctx, doc.ID)
	require.NoError(t, err)

	assert.NoError(t, f.uc.DeleteDocument(ctx, doc.ID))
	assert.ErrorIs(t, f.uc.DeleteDocument(ctx, doc.ID), domain.ErrNotFound)
}

// ── Catálogo referenciado por documentos ─────────────────────────────────────

func TestCatalogo_ReferenciadoPorDocumentoNoSeElimina(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	wh := f.store.addWarehouse(orgA, "central")
	spare := f.store.addWarehouse(orgA, "auxiliar")
	product := f.store.addProduct(orgA, "arroz", "111")
	doc, err := f.uc.CreateDocument(ctx, appinventory.CreateDocumentInput{
		OrganizationID: orgA,
		Type:           entity.DocumentTypeReceipt,
		WarehouseID:    wh.ID,
	})
	require.NoError(t, err)
	_, err = f.uc.ScanAndAdd(ctx, doc.ID, "111", qty("1"))
	require.NoError(t, err)

	warehouses := usecase.NewWarehouseUseCase(memWarehouseRepo{f.store})
	products := usecase.NewProductUseCase(memProductRepo{f.store})

	assert.ErrorIs(t, warehouses.Delete(ctx, orgA, wh.ID), domain.ErrInvalidInput)
	assert.ErrorIs(t, products.Delete(ctx, orgA, product.ID), domain.ErrInvalidInput)
	require.NoError(t, warehouses.Delete(ctx, orgA, spare.ID))

	require.NoError(t, f.uc.DeleteDocument(ctx, doc.ID))
	require.NoError(t, warehouses.Delete(ctx, orgA, wh.ID))
	require.NoError(t, products.Delete(ctx, orgA, product.ID))
}
