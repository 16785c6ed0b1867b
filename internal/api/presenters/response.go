package presenters

import (
	"errors"

	"Pantry-Tracker/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err under message. Server errors are logged and
// replaced by a generic text so store internals never reach the client.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		res.Message = domain.MessageValidationError
		res.Error = vErr.Error()
		res.Errors = vErr.Fields
	case statusCode >= fiber.StatusInternalServerError:
		log.Errorw(message, "method", c.Method(), "path", c.Path(), "error", err)
		res.Error = domain.MessageInternalError
	case err != nil:
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// StatusFor maps domain errors onto HTTP status codes.
func StatusFor(err error) int {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrFoodItemNotFound),
		errors.Is(err, domain.ErrNotificationNotFound),
		errors.Is(err, domain.ErrCartItemNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidExpiryDate),
		errors.Is(err, domain.ErrInvalidSort),
		errors.Is(err, domain.ErrInvalidCategory):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
