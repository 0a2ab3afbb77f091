package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
)

// UserHandler perfil y alta de usuarios.
type UserHandler struct {
	uc  *usecase.UserUseCase
	log zerolog.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, log zerolog.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=dto.UserResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetActor(c))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Create godoc
// @Summary      Crear usuario (admin)
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Nombre, email, password y rol"
// @Success      201   {object}  dto.APIResponse{data=dto.UserResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      403   {object}  dto.APIResponse
// @Failure      409   {object}  dto.APIResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := parseBody(c, &in, true); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusCreated, out)
}
