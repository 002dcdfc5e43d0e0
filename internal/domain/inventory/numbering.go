package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/inventario-docs/internal/domain/entity"
	"golang.org/x/text/width"
)

// FallbackPrefix prefijo para tipos de documento sin prefijo propio.
const FallbackPrefix = "DOC"

// Prefix devuelve el prefijo de numeración del tipo de documento.
func Prefix(t entity.DocumentType) string {
	switch t {
	case entity.DocumentTypeReceipt:
		return "ENT"
	case entity.DocumentTypeWriteOff:
		return "BAJ"
	case entity.DocumentTypeTransfer:
		return "TRA"
	case entity.DocumentTypeInventory:
		return "INV"
	default:
		return FallbackPrefix
	}
}

// FormatNumber construye el número canónico PREFIX-YYMM-NNNN.
// seq es el consecutivo del tipo dentro de la organización y el año de date.
func FormatNumber(t entity.DocumentType, date time.Time, seq int) string {
	return fmt.Sprintf("%s-%02d%02d-%04d", Prefix(t), date.Year()%100, int(date.Month()), seq)
}

// NormalizeBarcode recorta espacios y convierte dígitos y letras de ancho completo a ASCII,
// como los envían algunos lectores configurados con teclado asiático.
func NormalizeBarcode(barcode string) string {
	return strings.TrimSpace(width.Fold.String(barcode))
}
