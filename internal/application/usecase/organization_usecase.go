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

// OrganizationUseCase aplica reglas de negocio para organizaciones y membresías.
type OrganizationUseCase struct {
	repo repository.OrganizationRepository
}

// NewOrganizationUseCase construye el caso de uso con el puerto de persistencia.
func NewOrganizationUseCase(repo repository.OrganizationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{repo: repo}
}

// Create crea una organización y registra al creador como owner en la misma transacción.
// Devuelve domain.ErrDuplicate si el nombre o el NIT ya existen.
func (uc *OrganizationUseCase) Create(ctx context.Context, userID string, in dto.CreateOrganizationRequest) (*dto.OrganizationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name es requerido")
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	now := time.Now()
	org := &entity.Organization{
		ID:        uuid.New().String(),
		Name:      name,
		TaxID:     strings.TrimSpace(in.TaxID),
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &entity.Membership{
		ID:             uuid.New().String(),
		UserID:         userID,
		OrganizationID: org.ID,
		Role:           entity.RoleOwner,
		CreatedAt:      now,
	}
	if err := uc.repo.CreateWithOwner(ctx, org, owner); err != nil {
		return nil, err
	}
	out := dto.NewOrganizationResponse(org)
	out.Role = owner.Role
	return &out, nil
}

// GetByID obtiene una organización por ID.
func (uc *OrganizationUseCase) GetByID(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.NotFound("organización", id)
	}
	out := dto.NewOrganizationResponse(org)
	return &out, nil
}

// Update aplica una actualización parcial. Un NIT vacío lo elimina.
func (uc *OrganizationUseCase) Update(ctx context.Context, id string, in dto.UpdateOrganizationRequest) (*dto.OrganizationResponse, error) {
	org, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.NotFound("organización", id)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name no puede estar vacío")
		}
		org.Name = name
	}
	if in.TaxID != nil {
		org.TaxID = strings.TrimSpace(*in.TaxID)
	}
	if in.Address != nil {
		org.Address = *in.Address
	}
	if in.Phone != nil {
		org.Phone = *in.Phone
	}
	org.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, org); err != nil {
		return nil, err
	}
	out := dto.NewOrganizationResponse(org)
	return &out, nil
}

// ListForUser lista las organizaciones de las que el usuario es miembro.
func (uc *OrganizationUseCase) ListForUser(ctx context.Context, userID string) (*dto.OrganizationListResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrganizationResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.NewOrganizationResponse(o))
	}
	return &dto.OrganizationListResponse{Items: items}, nil
}

// Role devuelve el rol del usuario en la organización o domain.ErrForbidden si no es miembro.
func (uc *OrganizationUseCase) Role(ctx context.Context, userID, organizationID string) (string, error) {
	role, err := uc.repo.MembershipRole(ctx, userID, organizationID)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", domain.ErrForbidden
	}
	return role, nil
}
