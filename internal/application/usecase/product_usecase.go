package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos de una organización.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto activo. El código de barras se normaliza igual que en el escaneo;
// devuelve domain.ErrDuplicate si ya existe en la organización.
func (uc *ProductUseCase) Create(ctx context.Context, organizationID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name es requerido")
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultUnit
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           name,
		Barcode:        inventory.NormalizeBarcode(in.Barcode),
		Description:    in.Description,
		Unit:           unit,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto de la organización.
func (uc *ProductUseCase) GetByID(ctx context.Context, organizationID, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// GetByBarcode busca un producto por código de barras dentro de la organización.
func (uc *ProductUseCase) GetByBarcode(ctx context.Context, organizationID, barcode string) (*dto.ProductResponse, error) {
	code := inventory.NormalizeBarcode(barcode)
	if code == "" {
		return nil, domain.NewValidationError("código de barras requerido")
	}
	product, err := uc.repo.GetByBarcode(ctx, organizationID, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto", code)
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Update actualiza los campos enviados de un producto.
func (uc *ProductUseCase) Update(ctx context.Context, organizationID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name no puede estar vacío")
		}
		product.Name = name
	}
	if in.Barcode != nil {
		product.Barcode = inventory.NormalizeBarcode(*in.Barcode)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Delete elimina un producto de la organización. Si figura en documentos devuelve un ValidationError.
func (uc *ProductUseCase) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := uc.get(ctx, organizationID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// List lista productos de la organización con paginación.
func (uc *ProductUseCase) List(ctx context.Context, organizationID string, activeOnly bool, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByOrganization(ctx, organizationID, activeOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *ProductUseCase) get(ctx context.Context, organizationID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OrganizationID != organizationID {
		return nil, domain.NotFound("producto", id)
	}
	return product, nil
}
