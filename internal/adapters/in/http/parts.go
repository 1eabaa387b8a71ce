package http

import (
	"errors"
	"net/http"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/part"

	"github.com/labstack/echo/v4"
)

// TakePart handles POST /api/v1/parts/:partId/take.
func (s *Server) TakePart(c echo.Context) error {
	partID, err := partIDParam(c)
	if err != nil {
		return s.respondError(c, err)
	}
	var req operatorRequest
	if err = c.Bind(&req); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewTakePartCommand(partID, req.OperatorID)
	if err != nil {
		return s.respondError(c, err)
	}

	task, err := s.handlers.TakePart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newTrackingResponse(task))
}

// CompletePart handles POST /api/v1/parts/:partId/complete.
func (s *Server) CompletePart(c echo.Context) error {
	partID, err := partIDParam(c)
	if err != nil {
		return s.respondError(c, err)
	}
	var req operatorRequest
	if err = c.Bind(&req); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewCompletePartCommand(partID, req.OperatorID)
	if err != nil {
		return s.respondError(c, err)
	}

	task, err := s.handlers.CompletePart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTrackingResponse(task))
}

// ManualTransition handles POST /api/v1/parts/:partId/transition.
func (s *Server) ManualTransition(c echo.Context) error {
	partID, err := partIDParam(c)
	if err != nil {
		return s.respondError(c, err)
	}
	var req transitionRequest
	if err = c.Bind(&req); err != nil {
		return s.respondError(c, err)
	}

	// An unparsable target still goes through the constructor so that a blank
	// description is reported first.
	target, parseErr := part.ParseState(req.TargetState)
	cmd, err := commands.NewManualTransitionCommand(partID, req.OperatorID, target, req.Description)
	if err != nil {
		return s.respondError(c, errors.Join(err, parseErr))
	}

	task, err := s.handlers.ManualTransition.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTrackingResponse(task))
}

// ReceivePart handles POST /api/v1/parts/:partId/receive.
func (s *Server) ReceivePart(c echo.Context) error {
	partID, err := partIDParam(c)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewReceivePartCommand(partID)
	if err != nil {
		return s.respondError(c, err)
	}

	p, err := s.handlers.ReceivePart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newPartResponse(p))
}

// DeletePart handles DELETE /api/v1/parts/:partId.
func (s *Server) DeletePart(c echo.Context) error {
	partID, err := partIDParam(c)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewDeletePartCommand(partID)
	if err != nil {
		return s.respondError(c, err)
	}

	if err = s.handlers.DeletePart.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPartsByState handles GET /api/v1/parts/by-state/:state.
func (s *Server) GetPartsByState(c echo.Context) error {
	state, err := part.ParseState(c.Param("state"))
	if err != nil {
		return s.respondError(c, err)
	}

	query, err := queries.NewGetPartsByStateQuery(state)
	if err != nil {
		return s.respondError(c, err)
	}

	parts, err := s.handlers.PartsByState.Handle(c.Request().Context(), query)
	if err != nil {
		return s.respondError(c, err)
	}
	if parts == nil {
		parts = []queries.PartSummary{}
	}
	return c.JSON(http.StatusOK, parts)
}

// GetPartsByAllStates handles GET /api/v1/parts/by-all-states.
func (s *Server) GetPartsByAllStates(c echo.Context) error {
	buckets, err := s.handlers.PartsByAllStates.Handle(c.Request().Context(), queries.NewGetPartsByAllStatesQuery())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, buckets)
}
