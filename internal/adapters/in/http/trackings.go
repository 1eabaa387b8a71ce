package http

import (
	"net/http"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// GetTrackings handles GET /api/v1/trackings. Exactly one of partId, projectId
// or operatorId selects the filter.
func (s *Server) GetTrackings(c echo.Context) error {
	query, err := trackingsQuery(c)
	if err != nil {
		return s.respondError(c, err)
	}

	views, err := s.handlers.Trackings.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, nonNilViews(views))
}

func trackingsQuery(c echo.Context) (queries.GetTrackingsQuery, error) {
	partID := c.QueryParam("partId")
	projectID := c.QueryParam("projectId")
	operatorID := c.QueryParam("operatorId")

	set := 0
	for _, v := range []string{partID, projectID, operatorID} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return queries.GetTrackingsQuery{}, errs.NewValueIsRequiredError("exactly one of partId, projectId, operatorId")
	}

	switch {
	case partID != "":
		id, err := kernel.UUIDFromString(partID)
		if err != nil {
			return queries.GetTrackingsQuery{}, errs.NewValueIsInvalidErrorWithCause("partId", err)
		}
		return queries.NewGetTrackingsByPartQuery(id)
	case projectID != "":
		id, err := parseInt64("projectId", projectID)
		if err != nil {
			return queries.GetTrackingsQuery{}, err
		}
		return queries.NewGetTrackingsByProjectQuery(id)
	default:
		id, err := parseInt64("operatorId", operatorID)
		if err != nil {
			return queries.GetTrackingsQuery{}, err
		}
		return queries.NewGetTrackingsByOperatorQuery(id)
	}
}

// DeleteTaskTracking handles DELETE /api/v1/trackings/:trackingId.
func (s *Server) DeleteTaskTracking(c echo.Context) error {
	trackingID, err := int64Param(c, "trackingId")
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewDeleteTaskTrackingCommand(trackingID)
	if err != nil {
		return s.respondError(c, err)
	}

	if err = s.handlers.DeleteTaskTracking.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
