package postgres

// Traductores de errores del driver expuestos para los tests.
var (
	QuantityError = quantityError
	ConflictError = conflictError
)
