package http_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// ── Documentos en memoria ─────────────────────────────────────────────────────

// docStore guarda documentos, posiciones, productos y bodegas para las rutas de documentos.
type docStore struct {
	mu         sync.Mutex
	docs       map[string]entity.Document
	items      map[string]entity.DocumentItem
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	counter    int
}

func newDocStore() *docStore {
	return &docStore{
		docs:       map[string]entity.Document{},
		items:      map[string]entity.DocumentItem{},
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
	}
}

func (s *docStore) addDocument(d entity.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[d.ID] = d
}

func (s *docStore) addItem(it entity.DocumentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[it.ID] = it
}

func (s *docStore) addProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *docStore) item(id string) (entity.DocumentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	return it, ok
}

func (s *docStore) hasDocument(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[id]
	return ok
}

// storeTxRunner ejecuta la función sin transacción ni rollback.
type storeTxRunner struct{ s *docStore }

func (r storeTxRunner) Run(_ context.Context, fn func(
	docRepo repository.DocumentRepository,
	itemRepo repository.DocumentItemRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(storeDocRepo{r.s}, storeItemRepo{r.s}, storeProductRepo{r.s})
}

type storeDocRepo struct{ s *docStore }

func (r storeDocRepo) Create(_ context.Context, doc *entity.Document) error {
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

func (r storeDocRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r storeDocRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r storeDocRepo) ListByOrganization(_ context.Context, organizationID string, filter repository.DocumentFilter) ([]*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.s.docs {
		if d.OrganizationID == organizationID && (filter.Type == "" || d.Type == filter.Type) {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r storeDocRepo) UpdateStatus(_ context.Context, id, from, to string) (bool, error) {
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

func (r storeDocRepo) Delete(_ context.Context, id string) error {
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

func (r storeDocRepo) NextSequence(context.Context, string, entity.DocumentType, int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.counter++
	return r.s.counter, nil
}

type storeItemRepo struct{ s *docStore }

func (r storeItemRepo) Create(_ context.Context, item *entity.DocumentItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	return nil
}

func (r storeItemRepo) Accumulate(_ context.Context, item *entity.DocumentItem) (*entity.DocumentItem, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.items {
		if it.DocumentID == item.DocumentID && it.ProductID == item.ProductID {
			it.QuantityActual = it.QuantityActual.Add(item.QuantityActual)
			r.s.items[id] = it
			return &it, false, nil
		}
	}
	r.s.items[item.ID] = *item
	cp := *item
	return &cp, true, nil
}

func (r storeItemRepo) GetByID(_ context.Context, id string) (*entity.DocumentItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r storeItemRepo) ListByDocument(_ context.Context, documentID string) ([]entity.DocumentItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.DocumentItem{}
	for _, it := range r.s.items {
		if it.DocumentID == documentID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r storeItemRepo) ListByDocuments(ctx context.Context, documentIDs []string) (map[string][]entity.DocumentItem, error) {
	out := make(map[string][]entity.DocumentItem, len(documentIDs))
	for _, id := range documentIDs {
		out[id], _ = r.ListByDocument(ctx, id)
	}
	return out, nil
}

func (r storeItemRepo) UpdateActual(_ context.Context, id string, actual decimal.Decimal) error {
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

func (r storeItemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)
	return nil
}

type storeProductRepo struct{ s *docStore }

func (r storeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.addProduct(*p)
	return nil
}

func (r storeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r storeProductRepo) GetByBarcode(_ context.Context, organizationID, barcode string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.OrganizationID == organizationID && p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, nil
}

func (r storeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.addProduct(*p)
	return nil
}

func (r storeProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r storeProductRepo) ListByOrganization(context.Context, string, bool, int, int) ([]*entity.Product, error) {
	return nil, nil
}

type storeWarehouseRepo struct{ s *docStore }

func (r storeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r storeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r storeWarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return r.Create(ctx, w)
}

func (r storeWarehouseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.warehouses, id)
	return nil
}

func (r storeWarehouseRepo) ListByOrganization(context.Context, string, bool, int, int) ([]*entity.Warehouse, error) {
	return nil, nil
}

func (r storeWarehouseRepo) BelongsToOrganization(ctx context.Context, warehouseID, organizationID string) (bool, error) {
	w, _ := r.GetByID(ctx, warehouseID)
	return w != nil && w.OrganizationID == organizationID, nil
}
