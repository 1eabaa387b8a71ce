package http

import (
	"net/http"

	"shopfloor/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// ScanDeliveryCode handles POST /api/v1/deliveries/scan. A confirmed scan is
// followed by the completion check of the part's project; a failed check is
// logged and left to the delivery sweep job.
func (s *Server) ScanDeliveryCode(c echo.Context) error {
	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewScanDeliveryCodeCommand(req.Payload)
	if err != nil {
		return s.respondError(c, err)
	}

	ctx := c.Request().Context()
	p, err := s.handlers.ScanDeliveryCode.Handle(ctx, cmd)
	if err != nil {
		return s.respondError(c, err)
	}

	resp := ScanResponse{Part: newPartResponse(p)}

	check, err := commands.NewCheckProjectCompletionCommand(p.ProjectID())
	if err == nil {
		var result commands.ProjectCompletionResult
		result, err = s.handlers.CheckProjectCompletion.Handle(ctx, check)
		if err == nil {
			completion := newCompletionResponse(result)
			resp.Completion = &completion
		}
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Completion check after scan failed",
			"part_id", p.ID().String(), "project_id", p.ProjectID(), "error", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// RegisterProject handles POST /api/v1/projects.
func (s *Server) RegisterProject(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewRegisterProjectCommand(req.ClientAlias, req.Contact, req.InstallationDate, req.specs())
	if err != nil {
		return s.respondError(c, err)
	}

	p, err := s.handlers.RegisterProject.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newProjectResponse(p))
}

// CheckProjectCompletion handles POST /api/v1/projects/:projectId/completion-check.
func (s *Server) CheckProjectCompletion(c echo.Context) error {
	projectID, err := int64Param(c, "projectId")
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewCheckProjectCompletionCommand(projectID)
	if err != nil {
		return s.respondError(c, err)
	}

	result, err := s.handlers.CheckProjectCompletion.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCompletionResponse(result))
}
