package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/application/usecase"
)

// OrganizationHandler maneja las peticiones HTTP para Organization (protegido).
type OrganizationHandler struct {
	uc *usecase.OrganizationUseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *usecase.OrganizationUseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear organización
// @Description  El usuario autenticado queda como owner.
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrganizationRequest  true  "Datos de la organización"
// @Success      201   {object}  dto.OrganizationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/organizations [post]
func (h *OrganizationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrganizationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar mis organizaciones
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrganizationListResponse
// @Router       /api/organizations [get]
func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForUser(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener organización
// @Tags         organizations
// @Security     Bearer
// @Produce      json
// @Param        orgId  path  string  true  "ID de la organización"
// @Success      200    {object}  dto.OrganizationResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId} [get]
func (h *OrganizationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetOrganizationID(c))
	if err != nil {
		return handleError(c, err)
	}
	out.Role = GetRole(c)
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar organización
// @Description  Actualización parcial de nombre, NIT, dirección y teléfono. Solo owner o admin.
// @Tags         organizations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string                         true  "ID de la organización"
// @Param        body   body  dto.UpdateOrganizationRequest  true  "Campos a actualizar"
// @Success      200    {object}  dto.OrganizationResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId} [put]
func (h *OrganizationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrganizationRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	out.Role = GetRole(c)
	return c.JSON(out)
}
