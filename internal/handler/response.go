package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/roadmapai/internal/port"
)

// SuccessResponse wraps every successful reply.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorResponse wraps every failed reply.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func success(c fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(SuccessResponse{Success: true, Data: data})
}

func failure(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: msg})
}

// failWith maps err to a status code. Only tagged errors expose their
// message; anything else is reported as an internal error.
func failWith(c fiber.Ctx, err error) error {
	if errors.Is(err, port.ErrNotFound) {
		return failure(c, fiber.StatusNotFound, "not found")
	}

	var e *port.Error
	if !errors.As(err, &e) {
		return failure(c, fiber.StatusInternalServerError, "internal error")
	}

	status := fiber.StatusInternalServerError
	switch e.Kind {
	case port.KindValidation:
		status = fiber.StatusBadRequest
	case port.KindInvalidCredentials, port.KindTokenInvalid:
		status = fiber.StatusUnauthorized
	case port.KindDuplicateUser:
		status = fiber.StatusConflict
	case port.KindRemoteUnavailable:
		status = fiber.StatusServiceUnavailable
	}
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	return failure(c, status, msg)
}
