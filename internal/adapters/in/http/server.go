// Package http is the inbound REST adapter. It binds requests to commands and
// queries, maps error kinds to status codes and exposes Prometheus metrics.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/operator"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/model/project"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Use case ports consumed by the server. The command and query handlers satisfy them.
type (
	TakePartHandler interface {
		Handle(ctx context.Context, command commands.TakePartCommand) (*tracking.TaskTracking, error)
	}
	CompletePartHandler interface {
		Handle(ctx context.Context, command commands.CompletePartCommand) (*tracking.TaskTracking, error)
	}
	ManualTransitionHandler interface {
		Handle(ctx context.Context, command commands.ManualTransitionCommand) (*tracking.TaskTracking, error)
	}
	ReceivePartHandler interface {
		Handle(ctx context.Context, command commands.ReceivePartCommand) (*part.Part, error)
	}
	DeletePartHandler interface {
		Handle(ctx context.Context, command commands.DeletePartCommand) error
	}
	ScanDeliveryCodeHandler interface {
		Handle(ctx context.Context, command commands.ScanDeliveryCodeCommand) (*part.Part, error)
	}
	CheckProjectCompletionHandler interface {
		Handle(ctx context.Context, command commands.CheckProjectCompletionCommand) (commands.ProjectCompletionResult, error)
	}
	RegisterProjectHandler interface {
		Handle(ctx context.Context, command commands.RegisterProjectCommand) (*project.Project, error)
	}
	RegisterOperatorHandler interface {
		Handle(ctx context.Context, command commands.RegisterOperatorCommand) (*operator.Operator, error)
	}
	SetOperatorActiveHandler interface {
		Handle(ctx context.Context, command commands.SetOperatorActiveCommand) (*operator.Operator, error)
	}
	DeleteTaskTrackingHandler interface {
		Handle(ctx context.Context, command commands.DeleteTaskTrackingCommand) error
	}
	OperatorMetricsHandler interface {
		Handle(ctx context.Context, query queries.GetOperatorMetricsQuery) (services.OperatorMetrics, error)
	}
	OperatorHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOperatorHistoryQuery) ([]queries.TrackingView, error)
	}
	ActiveTaskHandler interface {
		Handle(ctx context.Context, query queries.GetActiveTaskQuery) (queries.TrackingView, error)
	}
	TrackingsHandler interface {
		Handle(ctx context.Context, query queries.GetTrackingsQuery) ([]queries.TrackingView, error)
	}
	PartsByStateHandler interface {
		Handle(ctx context.Context, query queries.GetPartsByStateQuery) ([]queries.PartSummary, error)
	}
	PartsByAllStatesHandler interface {
		Handle(ctx context.Context, query queries.GetPartsByAllStatesQuery) ([]queries.StateBucket, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	TakePart               TakePartHandler
	CompletePart           CompletePartHandler
	ManualTransition       ManualTransitionHandler
	ReceivePart            ReceivePartHandler
	DeletePart             DeletePartHandler
	ScanDeliveryCode       ScanDeliveryCodeHandler
	CheckProjectCompletion CheckProjectCompletionHandler
	RegisterProject        RegisterProjectHandler
	RegisterOperator       RegisterOperatorHandler
	SetOperatorActive      SetOperatorActiveHandler
	DeleteTaskTracking     DeleteTaskTrackingHandler
	OperatorMetrics        OperatorMetricsHandler
	OperatorHistory        OperatorHistoryHandler
	ActiveTask             ActiveTaskHandler
	Trackings              TrackingsHandler
	PartsByState           PartsByStateHandler
	PartsByAllStates       PartsByAllStatesHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	metrics  *Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// NewServer creates a new HTTP server. Metrics are registered on registry and
// served from it at /metrics.
func NewServer(handlers Handlers, registry *prometheus.Registry, logger *slog.Logger) (*Server, error) {
	metrics, err := NewMetrics(registry)
	if err != nil {
		return nil, err
	}
	return &Server{
		handlers: handlers,
		metrics:  metrics,
		gatherer: registry,
		logger:   logger.With("component", "http_server"),
	}, nil
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(s.metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1")

	api.POST("/parts/:partId/take", s.TakePart)
	api.POST("/parts/:partId/complete", s.CompletePart)
	api.POST("/parts/:partId/transition", s.ManualTransition)
	api.POST("/parts/:partId/receive", s.ReceivePart)
	api.DELETE("/parts/:partId", s.DeletePart)
	api.GET("/parts/by-state/:state", s.GetPartsByState)
	api.GET("/parts/by-all-states", s.GetPartsByAllStates)

	api.POST("/deliveries/scan", s.ScanDeliveryCode)
	api.POST("/projects", s.RegisterProject)
	api.POST("/projects/:projectId/completion-check", s.CheckProjectCompletion)

	api.POST("/operators", s.RegisterOperator)
	api.PUT("/operators/:operatorId/active", s.SetOperatorActive)
	api.GET("/operators/:operatorId/metrics", s.GetOperatorMetrics)
	api.GET("/operators/:operatorId/history", s.GetOperatorHistory)
	api.GET("/operators/:operatorId/active-task", s.GetActiveTask)

	api.GET("/trackings", s.GetTrackings)
	api.DELETE("/trackings/:trackingId", s.DeleteTaskTracking)
}
