package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
)

// pageFromQuery lee limit/offset (20 por defecto, 100 máximo).
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultPageLimit),
		Offset: c.QueryInt("offset", 0),
	}.Normalize()
}
