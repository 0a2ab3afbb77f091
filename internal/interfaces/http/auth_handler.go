package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/dto"
)

// AuthHandler maneja el login.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log zerolog.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  dto.APIResponse{data=dto.LoginResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      401   {object}  dto.APIResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in, true); err != nil {
		return handleError(c, h.log, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return ok(c, fiber.StatusOK, out)
}
