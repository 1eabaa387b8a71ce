package http

import (
	"strconv"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func partIDParam(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("partId"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("partId", err)
	}
	return id, nil
}

func int64Param(c echo.Context, name string) (int64, error) {
	return parseInt64(name, c.Param(name))
}

func parseInt64(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

// optionalTime parses an RFC 3339 query parameter; an absent value is nil.
func optionalTime(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &t, nil
}
