package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/mei-mentor-api/internal/application/dto"
	"github.com/jhoicas/mei-mentor-api/internal/domain"
	"github.com/jhoicas/mei-mentor-api/pkg/logger"
	"github.com/jhoicas/mei-mentor-api/pkg/taxid"
)

// Mensajes públicos del sobre de error.
const (
	msgInvalidInput = "Invalid input parameters"
	msgUnexpected   = "An unexpected error occurred"
)

// WriteError escribe el sobre de error {timestamp, status, error, message, path, details}.
func WriteError(c *fiber.Ctx, status int, message string, details map[string]string) error {
	label := StatusLabel(status)
	return c.Status(status).JSON(dto.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     label,
		Message:   message,
		Path:      c.Path(),
		Details:   details,
	})
}

// StatusLabel texto del campo error para cada status.
func StatusLabel(status int) string {
	if status == fiber.StatusBadRequest {
		return "Bad Request"
	}
	return utils.StatusMessage(status)
}

// ErrorHandler traduce los errores devueltos por los handlers al sobre común.
// Los errores no clasificados se registran y se responden como 500 sin detalles.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var verr *domain.ValidationError
		var ferr *fiber.Error
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Timestamp: time.Now().UTC(),
				Status:    fiber.StatusBadRequest,
				Error:     "Validation Failed",
				Message:   msgInvalidInput,
				Path:      c.Path(),
				Details:   verr.Fields,
			})
		case errors.Is(err, domain.ErrCustomerNotFound), errors.Is(err, domain.ErrNotFound):
			return WriteError(c, fiber.StatusBadRequest, "Customer not found for CPF: "+pathTaxID(c), nil)
		case errors.Is(err, domain.ErrAnalysisNotFound):
			return WriteError(c, fiber.StatusBadRequest, "No analysis found for CPF: "+pathTaxID(c), nil)
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNegativeIncome):
			return WriteError(c, fiber.StatusBadRequest, msgInvalidInput, nil)
		case errors.Is(err, domain.ErrUnauthorized):
			return WriteError(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
		case errors.Is(err, domain.ErrForbidden):
			return WriteError(c, fiber.StatusForbidden, "Inactive operator", nil)
		case errors.Is(err, domain.ErrDuplicate):
			return WriteError(c, fiber.StatusConflict, "Resource already exists", nil)
		case errors.As(err, &ferr):
			return WriteError(c, ferr.Code, ferr.Message, nil)
		}

		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return WriteError(c, fiber.StatusInternalServerError, msgUnexpected, nil)
	}
}

// pathTaxID CPF de la ruta, normalizado si es posible.
func pathTaxID(c *fiber.Ctx) string {
	raw := c.Params("taxId")
	if cpf := taxid.NormalizeCPF(raw); cpf != "" {
		return cpf
	}
	return raw
}
