package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/pkg/jwt"
)

// LocalActor clave de Fiber locals con el entity.Actor autenticado.
const LocalActor = "actor"

// AuthMiddleware valida el Bearer Token JWT y deja el entity.Actor en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "Authorization header requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío")
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "token inválido o expirado")
		}
		if claims.Role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no incluye rol")
		}
		c.Locals(LocalActor, entity.Actor{ID: claims.UserID, Name: claims.Name, Role: claims.Role})
		return c.Next()
	}
}

// GetActor devuelve el actor autenticado (después del middleware de auth).
func GetActor(c *fiber.Ctx) entity.Actor {
	a, _ := c.Locals(LocalActor).(entity.Actor)
	return a
}
