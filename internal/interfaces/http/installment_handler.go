package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
)

// InstallmentHandler cuotas de pago.
type InstallmentHandler struct {
	uc  *inventory.InstallmentUseCase
	log zerolog.Logger
}

// NewInstallmentHandler construye el handler.
func NewInstallmentHandler(uc *inventory.InstallmentUseCase, log zerolog.Logger) *InstallmentHandler {
	return &InstallmentHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar cuotas (por vencimiento)
// @Tags         installments
// @Security     Bearer
// @Produce      json
// @Param        stockEntryId  query  string  false  "ID de la entrada"
// @Param        paid          query  string  false  "true | false"
// @Success      200  {object}  dto.APIResponse{data=[]dto.InstallmentResponse}
// @Router       /api/installments [get]
func (h *InstallmentHandler) List(c *fiber.Ctx) error {
	var filter dto.InstallmentFilter
	if err := parseQuery(c, &filter); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Pay godoc
// @Summary      Registrar pago de una cuota (admin)
// @Description  Sin paid_at se usa la fecha actual.
// @Tags         installments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cuota"
// @Param        body  body  dto.PayInstallmentRequest  false  "Fecha de pago"
// @Success      200   {object}  dto.APIResponse{data=dto.InstallmentResponse}
// @Failure      403   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/installments/{id}/pay [put]
func (h *InstallmentHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayInstallmentRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in, false); err != nil {
			return handleError(c, h.log, err)
		}
	}
	out, err := h.uc.MarkPaid(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}
