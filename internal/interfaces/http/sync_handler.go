package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
	"github.com/jhoicas/inventario-docs/internal/application/mobilesync"
)

// SyncHandler maneja la sincronización con dispositivos móviles. Se autentica con el token de
// sesión móvil del cuerpo, no con JWT.
type SyncHandler struct {
	uc *mobilesync.UseCase
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *mobilesync.UseCase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// Init godoc
// @Summary      Iniciar sincronización móvil
// @Description  Consume la sesión (un solo uso) y devuelve organización, bodegas y productos activos
//               y los documentos más recientes con sus posiciones.
// @Tags         mobile-sync
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncInitRequest  true  "Token de sesión"
// @Success      200   {object}  dto.SyncSnapshotDTO
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/mobile-sync/init [post]
func (h *SyncHandler) Init(c *fiber.Ctx) error {
	var in dto.SyncInitRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Init(c.Context(), in.Token)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Data godoc
// @Summary      Descargar cambios
// @Description  Con una sesión ya consumida y vigente, devuelve el snapshot con documentos creados después de since.
// @Tags         mobile-sync
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncDataRequest  true  "Token y since"
// @Success      200   {object}  dto.SyncSnapshotDTO
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/mobile-sync/data [post]
func (h *SyncHandler) Data(c *fiber.Ctx) error {
	var in dto.SyncDataRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Pull(c.Context(), in.Token, in.Since)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
