package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
)

// StockExitHandler salidas de inventario y consulta de unidades.
type StockExitHandler struct {
	uc  *inventory.ExitUseCase
	log zerolog.Logger
}

// NewStockExitHandler construye el handler.
func NewStockExitHandler(uc *inventory.ExitUseCase, log zerolog.Logger) *StockExitHandler {
	return &StockExitHandler{uc: uc, log: log}
}

// StockItems godoc
// @Summary      Consultar unidades
// @Description  search ignora mayúsculas y acentos (producto, proveedor o nota fiscal).
// @Tags         stock-items
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "available | exited"
// @Param        productId  query  string  false  "ID del producto"
// @Param        search     query  string  false  "Texto libre"
// @Success      200  {object}  dto.APIResponse{data=[]dto.StockItemResponse}
// @Router       /api/stock-items [get]
func (h *StockExitHandler) StockItems(c *fiber.Ctx) error {
	var filter dto.StockItemFilter
	if err := parseQuery(c, &filter); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.StockItems(c.UserContext(), filter)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Registrar salida de unidades
// @Tags         stock-exits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockExitRequest  true  "Unidades, fecha y observación"
// @Success      201   {object}  dto.APIResponse{data=dto.StockExitResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/stock-exits [post]
func (h *StockExitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockExitRequest
	if err := parseBody(c, &in, true); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// List godoc
// @Summary      Listar salidas (más recientes primero)
// @Tags         stock-exits
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.StockExitResponse}
// @Router       /api/stock-exits [get]
func (h *StockExitHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Get godoc
// @Summary      Obtener salida
// @Tags         stock-exits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.APIResponse{data=dto.StockExitResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/stock-exits/{id} [get]
func (h *StockExitHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar fecha u observación de una salida
// @Description  Una salida confirmada solo la modifica un admin.
// @Tags         stock-exits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la salida"
// @Param        body  body  dto.UpdateStockExitRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse{data=dto.StockExitResponse}
// @Failure      403   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/stock-exits/{id} [put]
func (h *StockExitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockExitRequest
	if err := parseBody(c, &in, true); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar salida y devolver sus unidades al stock
// @Tags         stock-exits
// @Security     Bearer
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/stock-exits/{id} [delete]
func (h *StockExitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "salida eliminada"})
}

// Confirm godoc
// @Summary      Confirmar salida (admin)
// @Tags         stock-exits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.APIResponse{data=dto.StockExitResponse}
// @Failure      403  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/stock-exits/{id}/confirm [put]
func (h *StockExitHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}
