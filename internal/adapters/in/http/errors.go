package http

import (
	"errors"
	"net/http"

	"mealdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail writes err as an Error body. Internal errors are logged and their
// text is not sent to the client.
func (s *Server) fail(ctx echo.Context, err error, message string) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(message,
			zap.String("path", ctx.Path()),
			zap.Error(err),
		)
		return ctx.JSON(code, Error{Code: code, Message: message})
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}
