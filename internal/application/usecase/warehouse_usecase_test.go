package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/application/usecase"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWarehouseRepo struct {
	byID       map[string]*entity.Warehouse
	referenced map[string]bool // bodegas con documentos
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{byID: map[string]*entity.Warehouse{}, referenced: map[string]bool{}}
}

func (r *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.byID[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.NotFound("bodega", id)
	}
	if r.referenced[id] {
		return domain.NewValidationError("la bodega tiene documentos asociados")
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeWarehouseRepo) ListByOrganization(_ context.Context, organizationID string, activeOnly bool, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.byID {
		if w.OrganizationID == organizationID && (!activeOnly || w.IsActive) {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWarehouseRepo) BelongsToOrganization(_ context.Context, warehouseID, organizationID string) (bool, error) {
	w, ok := r.byID[warehouseID]
	return ok && w.OrganizationID == organizationID, nil
}

// ── Create / Update ──────────────────────────────────────────────────────────

func TestWarehouseUseCase_CreateActiva(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())

	out, err := uc.Create(context.Background(), "org-1", dto.CreateWarehouseRequest{Name: "  Principal ", Address: "Calle 1"})

	require.NoError(t, err)
	assert.Equal(t, "Principal", out.Name)
	assert.Equal(t, "org-1", out.OrganizationID)
	assert.True(t, out.IsActive)
}

func TestWarehouseUseCase_CreateSinNombre(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())

	_, err := uc.Create(context.Background(), "org-1", dto.CreateWarehouseRequest{Name: "   "})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestWarehouseUseCase_UpdateDesactiva(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	created, err := uc.Create(context.Background(), "org-1", dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)

	inactive := false
	out, err := uc.Update(context.Background(), "org-1", created.ID, dto.UpdateWarehouseRequest{IsActive: &inactive})

	require.NoError(t, err)
	assert.False(t, out.IsActive)
	active, err := uc.List(context.Background(), "org-1", true, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, active.Items)
}

// ── Aislamiento ──────────────────────────────────────────────────────────────

func TestWarehouseUseCase_OtraOrganizacionEsNotFound(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newFakeWarehouseRepo())
	created, err := uc.Create(context.Background(), "org-1", dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)

	_, err = uc.GetByID(context.Background(), "org-2", created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	name := "Robada"
	_, err = uc.Update(context.Background(), "org-2", created.ID, dto.UpdateWarehouseRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestWarehouseUseCase_DeleteSinDocumentos(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	created, err := uc.Create(context.Background(), "org-1", dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), "org-1", created.ID))

	_, err = uc.GetByID(context.Background(), "org-1", created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestWarehouseUseCase_DeleteConDocumentosEsValidacion(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	created, err := uc.Create(context.Background(), "org-1", dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)
	repo.referenced[created.ID] = true

	err = uc.Delete(context.Background(), "org-1", created.ID)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, repo.byID, created.ID)
}

func TestWarehouseUseCase_DeleteOtraOrganizacionEsNotFound(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	created, err := uc.Create(context.Background(), "org-1", dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)

	err = uc.Delete(context.Background(), "org-2", created.ID)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, repo.byID, created.ID)
}
