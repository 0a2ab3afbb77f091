package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
)

// StockEntryHandler recepción de mercancía.
type StockEntryHandler struct {
	uc  *purchasing.EntryUseCase
	log zerolog.Logger
}

// NewStockEntryHandler construye el handler.
func NewStockEntryHandler(uc *purchasing.EntryUseCase, log zerolog.Logger) *StockEntryHandler {
	return &StockEntryHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar entrada contra un pedido aprobado
// @Description  Explota cada línea en unidades y genera las cuotas de pago.
// @Tags         stock-entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockEntryRequest  true  "Pedido, notas fiscales y forma de pago"
// @Success      201   {object}  dto.APIResponse{data=dto.StockEntryCreatedResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Failure      422   {object}  dto.APIResponse
// @Router       /api/stock-entries [post]
func (h *StockEntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockEntryRequest
	// El caso de uso valida la forma después de pedido, líneas y tope recibido.
	if err := parseBody(c, &in, false); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar entradas (más recientes primero)
// @Tags         stock-entries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.StockEntryResponse}
// @Router       /api/stock-entries [get]
func (h *StockEntryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Get godoc
// @Summary      Obtener entrada
// @Tags         stock-entries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.APIResponse{data=dto.StockEntryResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/stock-entries/{id} [get]
func (h *StockEntryHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Installments godoc
// @Summary      Cuotas de una entrada
// @Tags         stock-entries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.APIResponse{data=[]dto.InstallmentResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/stock-entries/{id}/installments [get]
func (h *StockEntryHandler) Installments(c *fiber.Ctx) error {
	out, err := h.uc.Installments(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}
