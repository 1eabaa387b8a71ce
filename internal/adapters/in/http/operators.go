package http

import (
	"net/http"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// RegisterOperator handles POST /api/v1/operators.
func (s *Server) RegisterOperator(c echo.Context) error {
	var req operatorCreateRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewRegisterOperatorCommand(req.DisplayName)
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.handlers.RegisterOperator.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newOperatorResponse(o))
}

// SetOperatorActive handles PUT /api/v1/operators/:operatorId/active.
func (s *Server) SetOperatorActive(c echo.Context) error {
	operatorID, err := int64Param(c, "operatorId")
	if err != nil {
		return s.respondError(c, err)
	}
	var req operatorActiveRequest
	if err = c.Bind(&req); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewSetOperatorActiveCommand(operatorID, req.Active)
	if err != nil {
		return s.respondError(c, err)
	}

	o, err := s.handlers.SetOperatorActive.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newOperatorResponse(o))
}

// GetOperatorMetrics handles GET /api/v1/operators/:operatorId/metrics?from=&to=.
func (s *Server) GetOperatorMetrics(c echo.Context) error {
	operatorID, err := int64Param(c, "operatorId")
	if err != nil {
		return s.respondError(c, err)
	}
	from, err := optionalTime(c, "from")
	if err != nil {
		return s.respondError(c, err)
	}
	to, err := optionalTime(c, "to")
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetOperatorMetricsQuery(operatorID, from, to)
	if err != nil {
		return s.respondError(c, err)
	}

	metrics, err := s.handlers.OperatorMetrics.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newMetricsResponse(metrics))
}

// GetOperatorHistory handles GET /api/v1/operators/:operatorId/history.
func (s *Server) GetOperatorHistory(c echo.Context) error {
	operatorID, err := int64Param(c, "operatorId")
	if err != nil {
		return s.respondError(c, err)
	}

	limit := queries.DefaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		var v int64
		if v, err = parseInt64("limit", raw); err != nil {
			return s.respondError(c, err)
		}
		limit = int(v)
	}

	query, err := queries.NewGetOperatorHistoryQuery(operatorID, limit)
	if err != nil {
		return s.respondError(c, err)
	}

	history, err := s.handlers.OperatorHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, nonNilViews(history))
}

// GetActiveTask handles GET /api/v1/operators/:operatorId/active-task.
func (s *Server) GetActiveTask(c echo.Context) error {
	operatorID, err := int64Param(c, "operatorId")
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetActiveTaskQuery(operatorID)
	if err != nil {
		return s.respondError(c, err)
	}

	task, err := s.handlers.ActiveTask.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func nonNilViews(views []queries.TrackingView) []queries.TrackingView {
	if views == nil {
		return []queries.TrackingView{}
	}
	return views
}
