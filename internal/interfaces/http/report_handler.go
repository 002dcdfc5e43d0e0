package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-docs/internal/application/analytics"
	"github.com/jhoicas/inventario-docs/internal/application/dto"
)

const dateLayout = "2006-01-02"

// ReportHandler maneja los reportes de inventario (protegido, por organización, solo lectura).
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Discrepancies godoc
// @Summary      Diferencias de inventario
// @Description  Posiciones de inventarios completados con cantidad real distinta de la esperada,
//               ordenadas por diferencia absoluta descendente.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        orgId  path   string  true   "ID de la organización"
// @Param        from   query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to     query  string  false  "Hasta, inclusive (YYYY-MM-DD o RFC3339)"
// @Success      200    {object}  dto.DiscrepancyReportDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/reports/inventory/discrepancies [get]
func (h *ReportHandler) Discrepancies(c *fiber.Ctx) error {
	period, ok, err := periodFromQuery(c)
	if !ok {
		return err
	}
	out, err := h.uc.Discrepancies(c.Context(), GetOrganizationID(c), period)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// ExportDiscrepancies godoc
// @Summary      Exportar diferencias de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        orgId   path   string  true   "ID de la organización"
// @Param        format  query  string  false  "pdf | xlsx"  default(pdf)
// @Param        from    query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to      query  string  false  "Hasta, inclusive (YYYY-MM-DD o RFC3339)"
// @Success      200     {file}    binary
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/reports/inventory/discrepancies/export [get]
func (h *ReportHandler) ExportDiscrepancies(c *fiber.Ctx) error {
	period, ok, err := periodFromQuery(c)
	if !ok {
		return err
	}
	file, err := h.uc.ExportDiscrepancies(c.Context(), GetOrganizationID(c), period, c.Query("format", analytics.FormatPDF))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Filename+`"`)
	return c.Send(file.Content)
}

// Statistics godoc
// @Summary      Estadísticas de inventarios
// @Description  Totales del período y desglose mensual (YYYY-MM).
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        orgId  path   string  true   "ID de la organización"
// @Param        from   query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to     query  string  false  "Hasta, inclusive (YYYY-MM-DD o RFC3339)"
// @Success      200    {object}  dto.InventoryStatisticsDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/reports/inventory/statistics [get]
func (h *ReportHandler) Statistics(c *fiber.Ctx) error {
	period, ok, err := periodFromQuery(c)
	if !ok {
		return err
	}
	out, err := h.uc.Statistics(c.Context(), GetOrganizationID(c), period)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// MostScanned godoc
// @Summary      Productos más escaneados
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        orgId  path   string  true   "ID de la organización"
// @Param        top    query  int     false  "Cantidad de productos (máx. 100)"
// @Success      200    {object}  dto.MostScannedReportDTO
// @Router       /api/organizations/{orgId}/reports/products/most-scanned [get]
func (h *ReportHandler) MostScanned(c *fiber.Ctx) error {
	out, err := h.uc.MostScanned(c.Context(), GetOrganizationID(c), c.QueryInt("top", 0))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DocumentSummary godoc
// @Summary      Resumen de documentos
// @Description  Cantidad de documentos por tipo y estado.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        orgId  path   string  true   "ID de la organización"
// @Param        from   query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        to     query  string  false  "Hasta, inclusive (YYYY-MM-DD o RFC3339)"
// @Success      200    {object}  dto.DocumentSummaryDTO
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/organizations/{orgId}/reports/documents/summary [get]
func (h *ReportHandler) DocumentSummary(c *fiber.Ctx) error {
	period, ok, err := periodFromQuery(c)
	if !ok {
		return err
	}
	out, err := h.uc.DocumentSummary(c.Context(), GetOrganizationID(c), period)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// periodFromQuery lee from/to. Una fecha sin hora en "to" cubre el día completo (UTC).
// Si ok es false la respuesta 400 ya fue escrita.
func periodFromQuery(c *fiber.Ctx) (period dto.ReportPeriod, ok bool, err error) {
	from, err := parseReportTime(c.Query("from"), false)
	if err != nil {
		return period, false, badRequest(c, "INVALID_PARAMS", "from inválido: use YYYY-MM-DD o RFC3339")
	}
	to, err := parseReportTime(c.Query("to"), true)
	if err != nil {
		return period, false, badRequest(c, "INVALID_PARAMS", "to inválido: use YYYY-MM-DD o RFC3339")
	}
	return dto.ReportPeriod{From: from, To: to}, true, nil
}

func parseReportTime(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
