package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log zerolog.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := parseBody(c, &in, true); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// List godoc
// @Summary      Listar productos (ordenados por nombre)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := parseBody(c, &in, true); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handleError(c, h.log, err)
	}
	return c.JSON(dto.APIResponse{Success: true, Message: "producto eliminado"})
}
