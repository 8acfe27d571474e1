package server

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"notely/internal/auth"
	"notely/internal/database/repositories"
	"notely/internal/storage"
)

// apiError carries an HTTP status and client-facing message.
type apiError struct {
	status  int
	message string
	details any
}

func (e *apiError) Error() string {
	return e.message
}

func validationError(message string) error {
	return &apiError{status: fiber.StatusBadRequest, message: message}
}

func authError(message string) error {
	return &apiError{status: fiber.StatusUnauthorized, message: message}
}

func forbiddenError(message string) error {
	return &apiError{status: fiber.StatusForbidden, message: message}
}

func notFoundError(message string) error {
	return &apiError{status: fiber.StatusNotFound, message: message}
}

func conflictError(message string) error {
	return &apiError{status: fiber.StatusConflict, message: message}
}

// classify maps an error returned by a handler onto the response taxonomy.
func classify(err error) *apiError {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &apiError{status: fiberErr.Code, message: fiberErr.Message}
	}
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return &apiError{status: fiber.StatusBadRequest, message: "unsupported file type", details: err.Error()}
	case errors.Is(err, storage.ErrTooLarge):
		return &apiError{status: fiber.StatusBadRequest, message: "file too large", details: err.Error()}
	case errors.Is(err, auth.ErrNoCaller):
		return &apiError{status: fiber.StatusUnauthorized, message: "missing or invalid token"}
	case errors.Is(err, repositories.ErrNotFound):
		return &apiError{status: fiber.StatusNotFound, message: "not found"}
	case errors.Is(err, repositories.ErrConflict):
		return &apiError{status: fiber.StatusConflict, message: "already exists"}
	}
	return &apiError{status: fiber.StatusInternalServerError, message: "internal server error"}
}

func (s *FiberServer) errorHandler(c *fiber.Ctx, err error) error {
	apiErr := classify(err)
	if apiErr.status >= fiber.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Any("request_id", c.Locals("requestid")),
			slog.String("error", err.Error()),
		)
	}

	body := fiber.Map{"error": apiErr.message}
	if apiErr.details != nil {
		body["details"] = apiErr.details
	}
	return c.Status(apiErr.status).JSON(body)
}
