package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tipo de documento de movimiento o conteo de stock.
type DocumentType string

// Tipos de documento.
const (
	DocumentTypeReceipt   DocumentType = "receipt"   // entrada
	DocumentTypeWriteOff  DocumentType = "write_off" // baja
	DocumentTypeTransfer  DocumentType = "transfer"  // traslado entre bodegas
	DocumentTypeInventory DocumentType = "inventory" // conteo físico
)

// IsValid indica si el tipo es uno de los cuatro conocidos.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeReceipt, DocumentTypeWriteOff, DocumentTypeTransfer, DocumentTypeInventory:
		return true
	}
	return false
}

// Estados del documento. in_progress existe en el esquema pero ningún flujo lo produce.
const (
	DocumentStatusDraft      = "draft"
	DocumentStatusInProgress = "in_progress"
	DocumentStatusCompleted  = "completed"
	DocumentStatusCancelled  = "cancelled"
)

// Document es la raíz del agregado: cabecera más posiciones ordenadas por creación.
// Las referencias a bodegas vacías significan "sin bodega" (NULL en la DB).
type Document struct {
	ID                     string
	OrganizationID         string
	Type                   DocumentType
	Number                 string
	Status                 string
	DocumentDate           time.Time
	Comment                string
	CreatedByUserID        string
	WarehouseID            string // entradas / bajas
	SourceWarehouseID      string // traslados
	DestinationWarehouseID string // traslados
	CreatedAt              time.Time
	Items                  []DocumentItem
}

// IsDraft indica si el documento aún admite cambios en sus posiciones.
func (d *Document) IsDraft() bool { return d.Status == DocumentStatusDraft }

// WarehouseRefs devuelve las referencias a bodegas no vacías.
func (d *Document) WarehouseRefs() []string {
	refs := make([]string, 0, 3)
	for _, id := range []string{d.WarehouseID, d.SourceWarehouseID, d.DestinationWarehouseID} {
		if id != "" {
			refs = append(refs, id)
		}
	}
	return refs
}

// DocumentItem posición de un documento: un producto con cantidad esperada y real.
type DocumentItem struct {
	ID               string
	DocumentID       string
	ProductID        string
	QuantityExpected decimal.Decimal
	QuantityActual   decimal.Decimal // acumulada por escaneos
	CreatedAt        time.Time
}
