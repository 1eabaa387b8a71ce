package http

import (
	"context"
	"errors"
	"net/http"

	"shopfloor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindAlreadyAssigned,
		errs.KindOperatorBusy,
		errs.KindAlreadyConfirmed,
		errs.KindInvalidState,
		errs.KindNoActiveTask:
		return http.StatusConflict
	case errs.KindDescriptionRequired, errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindInvalidPayload:
		return http.StatusUnprocessableEntity
	case errs.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := StatusFor(kind)
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind = errs.KindValidation
		status = http.StatusBadRequest
		message = "invalid request body"
	}

	s.metrics.observeError(kind)

	switch kind {
	case errs.KindInternal:
		if errors.Is(err, context.Canceled) {
			break
		}
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = "internal error"
	case errs.KindStorageUnavailable:
		s.logger.WarnContext(c.Request().Context(), "Storage unavailable",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		c.Response().Header().Set("Retry-After", "1")
	}

	return c.JSON(status, ErrorResponse{
		Code:    status,
		Kind:    kind.String(),
		Message: message,
	})
}
