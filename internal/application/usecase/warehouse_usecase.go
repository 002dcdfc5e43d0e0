package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas de una organización.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una nueva bodega activa.
func (uc *WarehouseUseCase) Create(ctx context.Context, organizationID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name es requerido")
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           name,
		Address:        in.Address,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	out := dto.NewWarehouseResponse(warehouse)
	return &out, nil
}

// GetByID obtiene una bodega de la organización.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewWarehouseResponse(warehouse)
	return &out, nil
}

// Update actualiza nombre, dirección o estado de una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name no puede estar vacío")
		}
		warehouse.Name = name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.IsActive != nil {
		warehouse.IsActive = *in.IsActive
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	out := dto.NewWarehouseResponse(warehouse)
	return &out, nil
}

// Delete elimina una bodega de la organización. Con documentos asociados devuelve un ValidationError.
func (uc *WarehouseUseCase) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := uc.get(ctx, organizationID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista bodegas de la organización con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, organizationID, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, dto.NewWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *WarehouseUseCase) get(ctx context.Context, organizationID, id string) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.OrganizationID != organizationID {
		return nil, domain.NotFound("bodega", id)
	}
	return warehouse, nil
}
