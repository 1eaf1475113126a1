package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// Códigos de error devueltos en el campo "code".
const (
	CodeValidation   = "VALIDATION"
	CodeInvalidBody  = "INVALID_BODY"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeDuplicate    = "DUPLICATE"
	CodeUpstream     = "UPSTREAM_UNAVAILABLE"
	CodeInternal     = "INTERNAL"
)

// classify traduce un error de dominio a status, código y mensaje para el cliente.
// Los detalles de servicios externos y errores internos no salen del proceso.
func classify(err error) (int, string, string) {
	var fe *fiber.Error
	var nf *domain.NotFoundError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized, "no autorizado"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden, "acceso denegado"
	case errors.As(err, &nf):
		return fiber.StatusNotFound, CodeNotFound, nf.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound, "recurso no encontrado"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, CodeConflict, "el registro cambió mientras se actualizaba, reintente"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, CodeDuplicate, "el recurso ya existe"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, CodeUpstream, "servicio externo no disponible"
	case errors.As(err, &fe):
		return fe.Code, fiberCode(fe.Code), fe.Message
	default:
		return fiber.StatusInternalServerError, CodeInternal, "error interno"
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return CodeInvalidBody
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	}
	if status >= 500 {
		return CodeInternal
	}
	return "HTTP_ERROR"
}

// ErrorHandler responde todos los errores con el envelope {"ok": false, ...}.
// 5xx se registran con el error completo.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")
	return func(c *fiber.Ctx, err error) error {
		status, code, msg := classify(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("request_id", RequestID(c)).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg("error en la petición")
		}
		return c.Status(status).JSON(dto.NewError(code, msg))
	}
}
