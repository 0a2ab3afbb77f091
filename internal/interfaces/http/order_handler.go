package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
)

// OrderHandler pedidos de compra y su aprobación.
type OrderHandler struct {
	uc  *purchasing.OrderUseCase
	log zerolog.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *purchasing.OrderUseCase, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Número, fecha y líneas"
// @Success      201   {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
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
// @Summary      Listar pedidos (más recientes primero)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected | partial"
// @Success      200  {object}  dto.APIResponse{data=[]dto.OrderResponse}
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var filter dto.OrderListFilter
	if err := parseQuery(c, &filter); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Get godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar pedido
// @Description  Un usuario no admin devuelve todas las líneas a pendiente.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := parseBody(c, &in, true); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Receiving godoc
// @Summary      Resumen de recepción por línea (aprobado, recibido, pendiente)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.APIResponse{data=dto.ReceivingSummaryResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/orders/{id}/receiving [get]
func (h *OrderHandler) Receiving(c *fiber.Ctx) error {
	out, err := h.uc.ReceivingSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Approve godoc
// @Summary      Aprobar todas las líneas (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      403  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/orders/{id}/approve [put]
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Reject godoc
// @Summary      Rechazar todas las líneas (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Failure      403  {object}  dto.APIResponse
// @Failure      409  {object}  dto.APIResponse
// @Router       /api/orders/{id}/reject [put]
func (h *OrderHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// ApproveItem godoc
// @Summary      Aprobar una línea (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del pedido"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Router       /api/orders/{id}/items/{itemId}/approve [put]
func (h *OrderHandler) ApproveItem(c *fiber.Ctx) error {
	out, err := h.uc.ApproveItem(c.UserContext(), GetActor(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// RejectItem godoc
// @Summary      Rechazar una línea (admin)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del pedido"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.APIResponse{data=dto.OrderResponse}
// @Router       /api/orders/{id}/items/{itemId}/reject [put]
func (h *OrderHandler) RejectItem(c *fiber.Ctx) error {
	out, err := h.uc.RejectItem(c.UserContext(), GetActor(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}
