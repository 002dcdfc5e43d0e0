package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-docs/internal/domain"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := domain.NewValidationError("conteo incompleto: %d posiciones sin cantidad real", 3)

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "conteo incompleto: 3 posiciones sin cantidad real", err.Error())
	assert.Equal(t, "conteo incompleto: 3 posiciones sin cantidad real", domain.Reason(err))
}

func TestReason_ErrorEnvuelto(t *testing.T) {
	err := fmt.Errorf("escanear: %w", domain.NewValidationError("producto no encontrado"))

	assert.Equal(t, "producto no encontrado", domain.Reason(err))
	assert.Empty(t, domain.Reason(domain.ErrConflict))
}

func TestNotFound_EsErrNotFound(t *testing.T) {
	err := domain.NotFound("documento", "abc")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "documento abc")
}
