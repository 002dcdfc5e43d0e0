package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/inventario-docs/internal/domain"
	"github.com/jhoicas/inventario-docs/internal/domain/inventory"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isSerializationFailure detecta conflictos de concurrencia que el llamador puede reintentar
// (40001 serialization_failure, 40P01 deadlock_detected).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// isNumericOverflow detecta valores fuera del rango de la columna (22003 numeric_value_out_of_range).
func isNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22003"
	}
	return false
}

// quantityError traduce un desbordamiento de NUMERIC(18,3) a un ValidationError; el resto se envuelve con op.
func quantityError(op string, err error) error {
	if isNumericOverflow(err) {
		return domain.NewValidationError("la cantidad supera el máximo permitido (%s)",
			inventory.MaxQuantity.StringFixed(inventory.QuantityScale))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// conflictError traduce fallas de concurrencia a domain.ErrConflict; el resto se devuelve igual.
func conflictError(op string, err error) error {
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrConflict, op, err)
	}
	return err
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// fromNullable convierte NULL en "".
func fromNullable(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// limitOrNull traduce limit <= 0 a NULL (LIMIT NULL = sin límite en PostgreSQL).
func limitOrNull(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}
