package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/analytics"
)

// ReportHandler dashboard y reporte de stock.
type ReportHandler struct {
	uc  *analytics.ReportUseCase
	log zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Dashboard godoc
// @Summary      Estadísticas del dashboard
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.DashboardStatsDTO}
// @Router       /api/dashboard/stats [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Stock godoc
// @Summary      Reporte de stock por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.StockReportDTO}
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.StockReport(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock/pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.StockReportPDF(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}
