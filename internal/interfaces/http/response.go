package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain"
)

// Códigos de error del sobre de respuesta.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION"
	CodeOverReceipt  = "OVER_RECEIPT"
	CodeConflict     = "CONFLICT"
	CodeDuplicate    = "DUPLICATE"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Errores con el nombre JSON (o query) del campo.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = fld.Tag.Get("query")
		}
		return name
	})
	return v
}

// ok responde {success: true, data}.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.APIResponse{Success: true, Data: data})
}

// fail responde {success: false, error, message}.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.APIResponse{Success: false, Error: code, Message: message})
}

// statusFor traduce los errores de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrOverReceipt):
		return fiber.StatusUnprocessableEntity, CodeOverReceipt
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, CodeDuplicate
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, CodeConflict
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	}
	return fiber.StatusInternalServerError, CodeInternal
}

// handleError responde el error de un caso de uso; los 5xx se registran.
func handleError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	}
	return fail(c, status, code, err.Error())
}

// parseBody decodifica el JSON y, si check, valida las etiquetas `validate`.
// Los errores envuelven domain.ErrValidation (400).
func parseBody(c *fiber.Ctx, dst any, check bool) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: cuerpo inválido: %s", domain.ErrValidation, err.Error())
	}
	if check {
		if err := validate.Struct(dst); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrValidation, validationMessage(err))
		}
	}
	return nil
}

// parseQuery decodifica y valida los filtros de la query string.
func parseQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return fmt.Errorf("%w: parámetros inválidos: %s", domain.ErrValidation, err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, validationMessage(err))
	}
	return nil
}

// validationMessage resume los errores del validador en un texto legible.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, e.Namespace()+": "+fieldMessage(e))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "email inválido"
	case "min":
		if e.Kind() == reflect.String {
			return "mínimo " + e.Param() + " caracteres"
		}
		if e.Kind() == reflect.Slice {
			return "mínimo " + e.Param() + " elementos"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "máximo " + e.Param() + " caracteres"
		}
		if e.Kind() == reflect.Slice {
			return "máximo " + e.Param() + " elementos"
		}
		return "debe ser como máximo " + e.Param()
	case "oneof":
		return "debe ser uno de: " + e.Param()
	}
	return "valor inválido"
}
