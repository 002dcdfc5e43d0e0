package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacenamiento en memoria: una transacción a la vez, con rollback por snapshot.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	txMu sync.Mutex // serializa transacciones (equivalente al bloqueo de fila)
	mu   sync.Mutex // protege los mapas

	docs       map[string]entity.Document
	items      map[string]entity.DocumentItem
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	counters   map[string]int
	seq        int64 // orden de inserción de posiciones
}

func newMemStore() *memStore {
	return &memStore{
		docs:       map[string]entity.Document{},
		items:      map[string]entity.DocumentItem{},
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
		counters:   map[string]int{},
	}
}

type memSnapshot struct {
	docs     map[string]entity.Document
	items    map[string]entity.DocumentItem
	counters map[string]int
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := memSnapshot{
		docs:     make(map[string]entity.Document, len(s.docs)),
		items:    make(map[string]entity.DocumentItem, len(s.items)),
		counters: make(map[string]int, len(s.counters)),
	}
	for k, v := range s.docs {
		snap.docs[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = v
	}
	for k, v := range s.counters {
		snap.counters[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs, s.items, s.counters = snap.docs, snap.items, snap.counters
}

func (s *memStore) addProduct(orgID, name, barcode string) entity.Product {
	p := entity.Product{
		ID:             fmt.Sprintf("prod-%s-%s", orgID, name),
		OrganizationID: orgID,
		Name:           name,
		Barcode:        barcode,
		Unit:           entity.DefaultUnit,
		IsActive:       true,
	}
	s.mu.Lock()
	s.products[p.ID] = p
	s.mu.Unlock()
	return p
}

func (s *memStore) addWarehouse(orgID, name string) entity.Warehouse {
	w := entity.Warehouse{ID: fmt.Sprintf("wh-%s-%s", orgID, name), OrganizationID: orgID, Name: name, IsActive: true}
	s.mu.Lock()
	s.warehouses[w.ID] = w
	s.mu.Unlock()
	return w
}

func (s *memStore) itemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	itemRepo repository.DocumentItemRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	snap := r.s.snapshot()
	if err := fn(memDocRepo{r.s}, memItemRepo{r.s}, memProductRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// ── DocumentRepository ───────────────────────────────────────────────────────

type memDocRepo struct{ s *memStore }

func (r memDocRepo) Create(_ context.Context, doc *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.docs {
		if d.OrganizationID == doc.OrganizationID && d.Number == doc.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *doc
	cp.Items = nil
	r.s.docs[doc.ID] = cp
	return nil
}

func (r memDocRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r memDocRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r memDocRepo) ListByOrganization(_ context.Context, organizationID string, filter repository.DocumentFilter) ([]*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.s.docs {
		if d.OrganizationID != organizationID {
			continue
		}
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		if filter.CreatedAfter != nil && !d.CreatedAt.After(*filter.CreatedAfter) {
			continue
		}
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r memDocRepo) UpdateStatus(_ context.Context, id, from, to string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok || d.Status != from {
		return false, nil
	}
	d.Status = to
	r.s.docs[id] = d
	return true, nil
}

func (r memDocRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.docs, id)
	for itemID, it := range r.s.items {
		if it.DocumentID == id {
			delete(r.s.items, itemID)
		}
	}
	return nil
}

func (r memDocRepo) NextSequence(_ context.Context, organizationID string, docType entity.DocumentType, year int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := fmt.Sprintf("%s|%s|%d", organizationID, docType, year)
	r.s.counters[key]++
	return r.s.counters[key], nil
}

// ── DocumentItemRepository ───────────────────────────────────────────────────

type memItemRepo struct{ s *memStore }

func (r memItemRepo) findLocked(documentID, productID string) (entity.DocumentItem, bool) {
	for _, it := range r.s.items {
		if it.DocumentID == documentID && it.ProductID == productID {
			return it, true
		}
	}
	return entity.DocumentItem{}, false
}

func (r memItemRepo) insertLocked(item entity.DocumentItem) {
	r.s.seq++
	item.CreatedAt = time.Unix(0, r.s.seq)
	r.s.items[item.ID] = item
}

func (r memItemRepo) Create(_ context.Context, item *entity.DocumentItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.findLocked(item.DocumentID, item.ProductID); ok {
		return domain.ErrDuplicate
	}
	r.insertLocked(*item)
	return nil
}

func (r memItemRepo) Accumulate(_ context.Context, item *entity.DocumentItem) (*entity.DocumentItem, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.findLocked(item.DocumentID, item.ProductID); ok {
		existing.QuantityActual = existing.QuantityActual.Add(item.QuantityActual)
		r.s.items[existing.ID] = existing
		return &existing, false, nil
	}
	r.insertLocked(*item)
	stored := r.s.items[item.ID]
	return &stored, true, nil
}

func (r memItemRepo) GetByID(_ context.Context, id string) (*entity.DocumentItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r memItemRepo) ListByDocument(_ context.Context, documentID string) ([]entity.DocumentItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.DocumentItem{}
	for _, it := range r.s.items {
		if it.DocumentID == documentID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memItemRepo) ListByDocuments(ctx context.Context, documentIDs []string) (map[string][]entity.DocumentItem, error) {
	out := make(map[string][]entity.DocumentItem, len(documentIDs))
	for _, id := range documentIDs {
		items, _ := r.ListByDocument(ctx, id)
		out[id] = items
	}
	return out, nil
}

func (r memItemRepo) UpdateActual(_ context.Context, id string, actual decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return domain.NotFound("posición", id)
	}
	it.QuantityActual = actual
	r.s.items[id] = it
	return nil
}

func (r memItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return domain.NotFound("posición", id)
	}
	delete(r.s.items, id)
	return nil
}

// ── ProductRepository ────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

func (r memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProductRepo) GetByBarcode(_ context.Context, organizationID, barcode string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.OrganizationID == organizationID && p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *p
	return nil
}

func (r memProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.NotFound("producto", id)
	}
	for _, it := range r.s.items {
		if it.ProductID == id {
			return domain.NewValidationError("el producto figura en documentos")
		}
	}
	delete(r.s.products, id)
	return nil
}

func (r memProductRepo) ListByOrganization(_ context.Context, organizationID string, activeOnly bool, _, _ int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.OrganizationID == organizationID && (!activeOnly || p.IsActive) {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

// ── WarehouseRepository ──────────────────────────────────────────────────────

type memWarehouseRepo struct{ s *memStore }

func (r memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r memWarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return r.Create(ctx, w)
}

func (r memWarehouseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[id]; !ok {
		return domain.NotFound("bodega", id)
	}
	for _, d := range r.s.docs {
		if d.WarehouseID == id || d.SourceWarehouseID == id || d.DestinationWarehouseID == id {
			return domain.NewValidationError("la bodega tiene documentos asociados")
		}
	}
	delete(r.s.warehouses, id)
	return nil
}

func (r memWarehouseRepo) ListByOrganization(_ context.Context, organizationID string, activeOnly bool, _, _ int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.OrganizationID == organizationID && (!activeOnly || w.IsActive) {
			w := w
			out = append(out, &w)
		}
	}
	return out, nil
}

func (r memWarehouseRepo) BelongsToOrganization(ctx context.Context, warehouseID, organizationID string) (bool, error) {
	w, _ := r.GetByID(ctx, warehouseID)
	return w != nil && w.OrganizationID == organizationID, nil
}

// ── Recorder ─────────────────────────────────────────────────────────────────

type countingRecorder struct {
	mu          sync.Mutex
	created     int
	scans       map[string]int
	transitions map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{scans: map[string]int{}, transitions: map[string]int{}}
}

func (r *countingRecorder) DocumentCreated(entity.DocumentType) {
	r.mu.Lock()
	r.created++
	r.mu.Unlock()
}

func (r *countingRecorder) ItemScanned(result string) {
	r.mu.Lock()
	r.scans[result]++
	r.mu.Unlock()
}

func (r *countingRecorder) StatusChanged(status string) {
	r.mu.Lock()
	r.transitions[status]++
	r.mu.Unlock()
}
