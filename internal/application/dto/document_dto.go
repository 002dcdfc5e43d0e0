package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDocumentRequest entrada para crear un documento en borrador.
// Number vacío = numeración automática (PREFIX-YYMM-NNNN).
type CreateDocumentRequest struct {
	Type                   string     `json:"type" validate:"required,oneof=receipt write_off transfer inventory"`
	WarehouseID            string     `json:"warehouse_id" validate:"omitempty,uuid"`
	SourceWarehouseID      string     `json:"source_warehouse_id" validate:"omitempty,uuid"`
	DestinationWarehouseID string     `json:"destination_warehouse_id" validate:"omitempty,uuid"`
	DocumentDate           *time.Time `json:"document_date"`
	Comment                string     `json:"comment" validate:"max=1000"`
	Number                 string     `json:"number" validate:"omitempty,max=50"`
}

// ScanRequest entrada de un escaneo de código de barras. Quantity omitida = 1.
type ScanRequest struct {
	Barcode  string           `json:"barcode" validate:"required,max=100"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// AddItemRequest entrada para agregar una posición explícita.
type AddItemRequest struct {
	ProductID        string          `json:"product_id" validate:"required,uuid"`
	QuantityExpected decimal.Decimal `json:"quantity_expected"`
	QuantityActual   decimal.Decimal `json:"quantity_actual"`
}

// UpdateItemRequest entrada para sobrescribir la cantidad real de una posición.
// quantity_actual es obligatorio: un cuerpo sin él no debe borrar el conteo.
type UpdateItemRequest struct {
	QuantityActual *decimal.Decimal `json:"quantity_actual" validate:"required"`
}

// DocumentItemResponse salida de una posición.
type DocumentItemResponse struct {
	ID               string          `json:"id"`
	DocumentID       string          `json:"document_id"`
	ProductID        string          `json:"product_id"`
	QuantityExpected decimal.Decimal `json:"quantity_expected"`
	QuantityActual   decimal.Decimal `json:"quantity_actual"`
	CreatedAt        time.Time       `json:"created_at"`
}

// DocumentResponse salida de un documento con sus posiciones.
type DocumentResponse struct {
	ID                     string                 `json:"id"`
	OrganizationID         string                 `json:"organization_id"`
	Type                   string                 `json:"type"`
	Number                 string                 `json:"number"`
	Status                 string                 `json:"status"`
	DocumentDate           time.Time              `json:"document_date"`
	Comment                string                 `json:"comment"`
	CreatedByUserID        string                 `json:"created_by_user_id"`
	WarehouseID            string                 `json:"warehouse_id,omitempty"`
	SourceWarehouseID      string                 `json:"source_warehouse_id,omitempty"`
	DestinationWarehouseID string                 `json:"destination_warehouse_id,omitempty"`
	CreatedAt              time.Time              `json:"created_at"`
	Items                  []DocumentItemResponse `json:"items"`
}

// DocumentListResponse documentos de una organización.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Total int                `json:"total"`
}
