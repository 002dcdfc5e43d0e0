package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP para Warehouse (protegido, por organización).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string                      true  "ID de la organización"
// @Param        body   body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201    {object}  dto.WarehouseResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetOrganizationID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        orgId  path  string  true  "ID de la organización"
// @Param        id     path  string  true  "ID de la bodega"
// @Success      200    {object}  dto.WarehouseResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string                      true  "ID de la organización"
// @Param        id     path  string                      true  "ID de la bodega"
// @Param        body   body  dto.UpdateWarehouseRequest  true  "Campos a actualizar"
// @Success      200    {object}  dto.WarehouseResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), GetOrganizationID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        orgId   path   string  true   "ID de la organización"
// @Param        active  query  bool    false  "Solo activas"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.WarehouseListResponse
// @Router       /api/organizations/{orgId}/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.Context(), GetOrganizationID(c), c.QueryBool("active", false), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bodega
// @Description  Solo bodegas sin documentos; las demás se desactivan con is_active. Solo owner o admin.
// @Tags         warehouses
// @Security     Bearer
// @Param        orgId  path  string  true  "ID de la organización"
// @Param        id     path  string  true  "ID de la bodega"
// @Success      204
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/warehouses/{id} [delete]
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
