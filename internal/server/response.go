package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"gitlab.com/gastonapp/gaston-api/internal/calendar"
	"gitlab.com/gastonapp/gaston-api/internal/logger"
	"gitlab.com/gastonapp/gaston-api/internal/reports"
	"gitlab.com/gastonapp/gaston-api/internal/repository"
	"gitlab.com/gastonapp/gaston-api/internal/service"
)

// envelope wraps every JSON response. Data and Error are mutually exclusive.
type envelope struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *errorBody `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// errorHandler maps domain errors onto HTTP statuses and the error envelope.
// Unexpected errors are logged and reported as a generic 500.
func errorHandler(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	message := err.Error()

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		code = codeForStatus(status)
		message = fiberErr.Message
	}

	if status == fiber.StatusInternalServerError {
		logger.Log.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		message = "internal server error"
	}

	return c.Status(status).JSON(envelope{
		Success:   false,
		Error:     &errorBody{Code: code, Message: message},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, pgx.ErrNoRows),
		errors.Is(err, reports.ErrNoChartData):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNameTaken),
		errors.Is(err, service.ErrInUse):
		return fiber.StatusConflict, "conflict"
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidColor),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrDateInFuture),
		errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, reports.ErrRangeReversed),
		errors.Is(err, reports.ErrRangeTooLarge),
		errors.Is(err, reports.ErrRangeInFuture),
		errors.Is(err, repository.ErrInvalidRange):
		return fiber.StatusBadRequest, "invalid_request"
	default:
		return fiber.StatusInternalServerError, "internal"
	}
}

func codeForStatus(status int) string {
	switch {
	case status == fiber.StatusNotFound:
		return "not_found"
	case status == fiber.StatusConflict:
		return "conflict"
	case status >= 400 && status < 500:
		return "invalid_request"
	default:
		return "internal"
	}
}
