package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/domain"
)

// roleResolver es el contrato mínimo que necesita el middleware para verificar membresías.
// Lo implementa *usecase.OrganizationUseCase.
type roleResolver interface {
	Role(ctx context.Context, userID, organizationID string) (string, error)
}

// RequireOrganizationAccess verifica que el usuario autenticado sea miembro de la organización
// del parámetro :orgId y guarda organización y rol en c.Locals. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay usuario en el contexto.
//   - 403 Forbidden → el usuario no es miembro de la organización.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireOrganizationAccess(resolver roleResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no encontrado en el token",
			})
		}
		orgID := c.Params("orgId")
		if orgID == "" {
			return badRequest(c, "MISSING_ID", "orgId es requerido")
		}

		role, err := resolver.Role(c.Context(), userID, orgID)
		if err != nil {
			if errors.Is(err, domain.ErrForbidden) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Code:    "FORBIDDEN",
					Message: "sin acceso a la organización",
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ACCESS_CHECK_FAILED",
				Message: "no se pudo verificar el acceso, intente más tarde",
			})
		}

		c.Locals(LocalOrganizationID, orgID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole restringe la ruta a los roles indicados. Debe usarse DESPUÉS de RequireOrganizationAccess.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "rol no disponible",
			})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "el rol '" + role + "' no puede realizar esta acción",
		})
	}
}

// uuidParams responde 404 si alguno de los parámetros de ruta indicados no es un UUID,
// así un ID mal formado no llega a la DB.
func uuidParams(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range names {
			if err := uuid.Validate(c.Params(name)); err != nil {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Code:    "NOT_FOUND",
					Message: name + " no corresponde a ningún recurso",
				})
			}
		}
		return c.Next()
	}
}
