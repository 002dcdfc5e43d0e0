package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/entity"
)

// QuantityScale decimales admitidos en cantidades (NUMERIC(18,3)).
const QuantityScale = 3

// MaxQuantity mayor cantidad representable en NUMERIC(18,3): 15 dígitos enteros y 3 decimales.
var MaxQuantity = decimal.RequireFromString("999999999999999.999")

// CanTransition indica si el paso de estado from -> to es legal.
// Solo draft tiene salidas; completed y cancelled son terminales.
func CanTransition(from, to string) bool {
	if from != entity.DocumentStatusDraft {
		return false
	}
	return to == entity.DocumentStatusCompleted || to == entity.DocumentStatusCancelled
}

// CheckTransition valida la transición y devuelve un ValidationError con el motivo.
func CheckTransition(doc *entity.Document, to string) error {
	if CanTransition(doc.Status, to) {
		return nil
	}
	switch to {
	case entity.DocumentStatusCompleted:
		return domain.NewValidationError("solo se pueden completar documentos en borrador (estado actual: %s)", doc.Status)
	case entity.DocumentStatusCancelled:
		return domain.NewValidationError("solo se pueden cancelar documentos en borrador (estado actual: %s)", doc.Status)
	}
	return domain.NewValidationError("transición de %s a %s no permitida", doc.Status, to)
}

// CheckEditable exige que el documento siga en borrador para modificar sus posiciones.
func CheckEditable(doc *entity.Document) error {
	if !doc.IsDraft() {
		return domain.NewValidationError("el documento %s no está en borrador (estado: %s)", doc.Number, doc.Status)
	}
	return nil
}

// CheckCompletable valida las precondiciones de completar un documento: borrador, con posiciones
// y, para inventarios, sin posiciones con cantidad real cero.
// Una cantidad real cero equivale a "sin contar": un conteo legítimo de cero no puede registrarse.
func CheckCompletable(doc *entity.Document) error {
	if err := CheckTransition(doc, entity.DocumentStatusCompleted); err != nil {
		return err
	}
	if len(doc.Items) == 0 {
		return domain.NewValidationError("el documento no tiene posiciones")
	}
	if doc.Type != entity.DocumentTypeInventory {
		return nil
	}
	uncounted := UncountedItems(doc.Items)
	if uncounted > 0 {
		return domain.NewValidationError("conteo incompleto: %d posiciones sin cantidad real", uncounted)
	}
	return nil
}

// UncountedItems cuenta las posiciones con cantidad real cero.
func UncountedItems(items []entity.DocumentItem) int {
	n := 0
	for _, it := range items {
		if it.QuantityActual.IsZero() {
			n++
		}
	}
	return n
}

// ValidateQuantity valida una cantidad: no negativa (o estrictamente positiva si positive),
// no mayor que MaxQuantity y con a lo sumo QuantityScale decimales.
func ValidateQuantity(field string, q decimal.Decimal, positive bool) error {
	if positive && !q.IsPositive() {
		return domain.NewValidationError("%s debe ser mayor que cero", field)
	}
	if q.IsNegative() {
		return domain.NewValidationError("%s no puede ser negativa", field)
	}
	if q.GreaterThan(MaxQuantity) {
		return domain.NewValidationError("%s no puede superar %s", field, MaxQuantity.StringFixed(QuantityScale))
	}
	if !q.Equal(q.Round(QuantityScale)) {
		return domain.NewValidationError("%s admite máximo %d decimales", field, QuantityScale)
	}
	return nil
}
