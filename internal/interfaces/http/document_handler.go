package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/application/inventory"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// DocumentHandler maneja documentos de stock, sus posiciones y su ciclo de vida (protegido, por organización).
type DocumentHandler struct {
	uc *inventory.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *inventory.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear documento
// @Description  Crea un documento en borrador. Sin number se asigna PREFIX-YYMM-NNNN.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string                     true  "ID de la organización"
// @Param        body   body  dto.CreateDocumentRequest  true  "Datos del documento"
// @Success      201    {object}  dto.DocumentResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	doc, err := h.uc.CreateDocument(c.Context(), inventory.CreateDocumentInput{
		OrganizationID:         GetOrganizationID(c),
		Type:                   entity.DocumentType(in.Type),
		WarehouseID:            in.WarehouseID,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		DocumentDate:           in.DocumentDate,
		Comment:                in.Comment,
		CreatedByUserID:        GetUserID(c),
		Number:                 in.Number,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDocumentResponse(doc))
}

// List godoc
// @Summary      Listar documentos
// @Description  Documentos de la organización con sus posiciones, más recientes primero.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        orgId  path   string  true   "ID de la organización"
// @Param        type   query  string  false  "receipt | write_off | transfer | inventory"
// @Success      200    {object}  dto.DocumentListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.uc.GetOrganizationDocuments(c.Context(), GetOrganizationID(c), entity.DocumentType(c.Query("type")))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.NewDocumentListResponse(docs))
}

// GetByID godoc
// @Summary      Obtener documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        orgId  path  string  true  "ID de la organización"
// @Param        id     path  string  true  "ID del documento"
// @Success      200    {object}  dto.DocumentResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.document(c)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.NewDocumentResponse(doc))
}

// Delete godoc
// @Summary      Eliminar documento
// @Description  Elimina el documento y sus posiciones. No se permite sobre documentos completados. Solo owner/admin.
// @Tags         documents
// @Security     Bearer
// @Param        orgId  path  string  true  "ID de la organización"
// @Param        id     path  string  true  "ID del documento"
// @Success      204
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	doc, err := h.document(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.uc.DeleteDocument(c.Context(), doc.ID); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Scan godoc
// @Summary      Escanear código de barras
// @Description  Suma la cantidad a la posición del producto; la crea con esperado 0 si no existe.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string           true  "ID de la organización"
// @Param        id     path  string           true  "ID del documento"
// @Param        body   body  dto.ScanRequest  true  "barcode y quantity (1 si se omite)"
// @Success      200    {object}  dto.DocumentItemResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents/{id}/items/scan [post]
func (h *DocumentHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	doc, err := h.document(c)
	if err != nil {
		return handleError(c, err)
	}
	quantity := decimal.NewFromInt(1)
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	item, err := h.uc.ScanAndAdd(c.Context(), doc.ID, in.Barcode, quantity)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.NewDocumentItemResponse(item))
}

// AddItem godoc
// @Summary      Agregar posición
// @Description  Agrega un producto con cantidades esperada y real conocidas.
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId  path  string              true  "ID de la organización"
// @Param        id     path  string              true  "ID del documento"
// @Param        body   body  dto.AddItemRequest  true  "Posición"
// @Success      201    {object}  dto.DocumentItemResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents/{id}/items [post]
func (h *DocumentHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	doc, err := h.document(c)
	if err != nil {
		return handleError(c, err)
	}
	item, err := h.uc.AddItemExplicit(c.Context(), doc.ID, inventory.AddItemInput{
		ProductID: in.ProductID,
		Expected:  in.QuantityExpected,
		Actual:    in.QuantityActual,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewDocumentItemResponse(item))
}

// UpdateItem godoc
// @Summary      Sobrescribir cantidad real
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orgId   path  string                 true  "ID de la organización"
// @Param        id      path  string                 true  "ID del documento"
// @Param        itemId  path  string                 true  "ID de la posición"
// @Param        body    body  dto.UpdateItemRequest  true  "quantity_actual"
// @Success      200     {object}  dto.DocumentItemResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents/{id}/items/{itemId} [put]
func (h *DocumentHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	itemID, err := h.item(c)
	if err != nil {
		return handleError(c, err)
	}
	item, err := h.uc.UpdateItemQuantity(c.Context(), itemID, *in.QuantityActual)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.NewDocumentItemResponse(item))
}

// DeleteItem godoc
// @Summary      Eliminar posición
// @Tags         documents
// @Security     Bearer
// @Param        orgId   path  string  true  "ID de la organización"
// @Param        id      path  string  true  "ID del documento"
// @Param        itemId  path  string  true  "ID de la posición"
// @Success      204
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents/{id}/items/{itemId} [delete]
func (h *DocumentHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, err := h.item(c)
	if err != nil {
		return handleError(c, err)
	}
	if err := h.uc.DeleteItem(c.Context(), itemID); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete godoc
// @Summary      Completar documento
// @Description  Un inventario con posiciones sin cantidad real no se puede completar.
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        orgId  path  string  true  "ID de la organización"
// @Param        id     path  string  true  "ID del documento"
// @Success      200    {object}  dto.DocumentResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents/{id}/complete [post]
func (h *DocumentHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.uc.CompleteDocument)
}

// Cancel godoc
// @Summary      Cancelar documento
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        orgId  path  string  true  "ID de la organización"
// @Param        id     path  string  true  "ID del documento"
// @Success      200    {object}  dto.DocumentResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/documents/{id}/cancel [post]
func (h *DocumentHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.uc.CancelDocument)
}

func (h *DocumentHandler) transition(c *fiber.Ctx, fn func(ctx context.Context, id string) (*entity.Document, error)) error {
	doc, err := h.document(c)
	if err != nil {
		return handleError(c, err)
	}
	updated, err := fn(c.Context(), doc.ID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.NewDocumentResponse(updated))
}

// document carga el documento :id; si pertenece a otra organización responde como inexistente.
func (h *DocumentHandler) document(c *fiber.Ctx) (*entity.Document, error) {
	id := c.Params("id")
	doc, err := h.uc.GetDocument(c.Context(), id)
	if err != nil {
		return nil, err
	}
	if doc.OrganizationID != GetOrganizationID(c) {
		return nil, domain.NotFound("documento", id)
	}
	return doc, nil
}

// item valida que :itemId pertenezca al documento :id de la organización.
func (h *DocumentHandler) item(c *fiber.Ctx) (string, error) {
	doc, err := h.document(c)
	if err != nil {
		return "", err
	}
	itemID := c.Params("itemId")
	item, err := h.uc.GetItem(c.Context(), itemID)
	if err != nil {
		return "", err
	}
	if item.DocumentID != doc.ID {
		return "", domain.NotFound("posición", itemID)
	}
	return item.ID, nil
}
