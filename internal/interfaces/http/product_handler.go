package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos (protegido, por organización).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string                    true  "ID de la organización"
// @Param        body   body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201    {object}  dto.ProductResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse  "código de barras repetido"
// @Router       /api/organizations/{orgId}/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
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
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        orgId  path  string  true  "ID de la organización"
// @Param        id     path  string  true  "ID del producto"
// @Success      200    {object}  dto.ProductResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetOrganizationID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetByBarcode godoc
// @Summary      Buscar producto por código de barras
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        orgId    path  string  true  "ID de la organización"
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200      {object}  dto.ProductResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/products/barcode/{barcode} [get]
func (h *ProductHandler) GetByBarcode(c *fiber.Ctx) error {
	out, err := h.uc.GetByBarcode(c.Context(), GetOrganizationID(c), c.Params("barcode"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string                    true  "ID de la organización"
// @Param        id     path  string                    true  "ID del producto"
// @Param        body   body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200    {object}  dto.ProductResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
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
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        orgId   path   string  true   "ID de la organización"
// @Param        active  query  bool    false  "Solo activos"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/organizations/{orgId}/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	out, err := h.uc.List(c.Context(), GetOrganizationID(c), c.QueryBool("active", false), page.Limit, page.Offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Solo productos que no figuran en documentos; los demás se desactivan con is_active. Solo owner o admin.
// @Tags         products
// @Security     Bearer
// @Param        orgId  path  string  true  "ID de la organización"
// @Param        id     path  string  true  "ID del producto"
// @Success      204
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetOrganizationID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
