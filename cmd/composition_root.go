package cmd

import (
	"context"
	"log/slog"

	httpin "shopfloor/internal/adapters/in/http"
	"shopfloor/internal/adapters/out/blob"
	"shopfloor/internal/adapters/out/postgres"
	"shopfloor/internal/adapters/out/qrcode"
	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/jobs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot builds every use-case handler and the servers around them
// from one configuration and database handle.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	catalog    *part.Catalog
	renderer   ports.CodeRenderer
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. The packing-code store is opened here
// so a misconfigured bucket fails at startup rather than on the first PACKED part.
func NewCompositionRoot(ctx context.Context, config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	store, err := blob.Open(ctx, config.BlobConfig())
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.NewSystemClock(),
		catalog:    part.DefaultCatalog(),
		renderer:   qrcode.NewRenderer(store),
		logger:     logger,
	}, nil
}

// Migrate applies the schema.
func (c *CompositionRoot) Migrate() error {
	return postgres.Migrate(c.gormDB)
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) partUoWFactory() commands.PartUoWFactory {
	return FuncPartUoWFactory(func() commands.PartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) projectUoWFactory() commands.ProjectUoWFactory {
	return FuncProjectUoWFactory(func() commands.ProjectUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) operatorUoWFactory() commands.OperatorUoWFactory {
	return FuncOperatorUoWFactory(func() commands.OperatorUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) resolver() services.TransitionResolver {
	return services.NewTransitionResolver(c.catalog)
}

func (c *CompositionRoot) CreateTakePartCommandHandler() commands.TakePartCommandHandler {
	return commands.NewTakePartCommandHandler(c.assignmentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompletePartCommandHandler() commands.CompletePartCommandHandler {
	return commands.NewCompletePartCommandHandler(
		c.assignmentUoWFactory(), c.clock, c.resolver(), c.CreateMintPackingCodeCommandHandler(), c.logger,
	)
}

func (c *CompositionRoot) CreateManualTransitionCommandHandler() commands.ManualTransitionCommandHandler {
	return commands.NewManualTransitionCommandHandler(
		c.assignmentUoWFactory(), c.clock, c.resolver(), c.CreateMintPackingCodeCommandHandler(), c.logger,
	)
}

func (c *CompositionRoot) CreateMintPackingCodeCommandHandler() commands.MintPackingCodeCommandHandler {
	return commands.NewMintPackingCodeCommandHandler(c.projectUoWFactory(), c.renderer, c.config.QRSize)
}

func (c *CompositionRoot) CreateScanDeliveryCodeCommandHandler() commands.ScanDeliveryCodeCommandHandler {
	return commands.NewScanDeliveryCodeCommandHandler(c.partUoWFactory())
}

func (c *CompositionRoot) CreateCheckProjectCompletionCommandHandler() commands.CheckProjectCompletionCommandHandler {
	return commands.NewCheckProjectCompletionCommandHandler(c.projectUoWFactory())
}

func (c *CompositionRoot) CreateReceivePartCommandHandler() commands.ReceivePartCommandHandler {
	return commands.NewReceivePartCommandHandler(c.partUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateDeletePartCommandHandler() commands.DeletePartCommandHandler {
	return commands.NewDeletePartCommandHandler(c.partUoWFactory(), c.renderer, c.logger)
}

func (c *CompositionRoot) CreateRegisterProjectCommandHandler() commands.RegisterProjectCommandHandler {
	return commands.NewRegisterProjectCommandHandler(c.projectUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRegisterOperatorCommandHandler() commands.RegisterOperatorCommandHandler {
	return commands.NewRegisterOperatorCommandHandler(c.operatorUoWFactory())
}

func (c *CompositionRoot) CreateSetOperatorActiveCommandHandler() commands.SetOperatorActiveCommandHandler {
	return commands.NewSetOperatorActiveCommandHandler(c.operatorUoWFactory())
}

func (c *CompositionRoot) CreateDeleteTaskTrackingCommandHandler() commands.DeleteTaskTrackingCommandHandler {
	return commands.NewDeleteTaskTrackingCommandHandler(c.trackingUoWFactory())
}

func (c *CompositionRoot) CreateRetryPackingCodesCommandHandler() commands.RetryPackingCodesCommandHandler {
	return commands.NewRetryPackingCodesCommandHandler(c.partUoWFactory(), c.CreateMintPackingCodeCommandHandler())
}

func (c *CompositionRoot) CreateSweepDeliveriesCommandHandler() commands.SweepDeliveriesCommandHandler {
	return commands.NewSweepDeliveriesCommandHandler(c.projectUoWFactory(), c.CreateCheckProjectCompletionCommandHandler())
}

func (c *CompositionRoot) CreateGetOperatorMetricsQueryHandler() queries.GetOperatorMetricsQueryHandler {
	return queries.NewGetOperatorMetricsQueryHandler(c.gormDB, c.clock, c.config.MetricsWindowDays)
}

func (c *CompositionRoot) CreateGetOperatorHistoryQueryHandler() queries.GetOperatorHistoryQueryHandler {
	return queries.NewGetOperatorHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveTaskQueryHandler() queries.GetActiveTaskQueryHandler {
	return queries.NewGetActiveTaskQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingsQueryHandler() queries.GetTrackingsQueryHandler {
	return queries.NewGetTrackingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartsByStateQueryHandler() queries.GetPartsByStateQueryHandler {
	return queries.NewGetPartsByStateQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPartsByAllStatesQueryHandler() queries.GetPartsByAllStatesQueryHandler {
	return queries.NewGetPartsByAllStatesQueryHandler(c.gormDB, c.catalog)
}

// CreateHTTPServer builds the REST adapter with its own metrics registry.
func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return httpin.NewServer(httpin.Handlers{
		TakePart:               c.CreateTakePartCommandHandler(),
		CompletePart:           c.CreateCompletePartCommandHandler(),
		ManualTransition:       c.CreateManualTransitionCommandHandler(),
		ReceivePart:            c.CreateReceivePartCommandHandler(),
		DeletePart:             c.CreateDeletePartCommandHandler(),
		ScanDeliveryCode:       c.CreateScanDeliveryCodeCommandHandler(),
		CheckProjectCompletion: c.CreateCheckProjectCompletionCommandHandler(),
		RegisterProject:        c.CreateRegisterProjectCommandHandler(),
		RegisterOperator:       c.CreateRegisterOperatorCommandHandler(),
		SetOperatorActive:      c.CreateSetOperatorActiveCommandHandler(),
		DeleteTaskTracking:     c.CreateDeleteTaskTrackingCommandHandler(),
		OperatorMetrics:        c.CreateGetOperatorMetricsQueryHandler(),
		OperatorHistory:        c.CreateGetOperatorHistoryQueryHandler(),
		ActiveTask:             c.CreateGetActiveTaskQueryHandler(),
		Trackings:              c.CreateGetTrackingsQueryHandler(),
		PartsByState:           c.CreateGetPartsByStateQueryHandler(),
		PartsByAllStates:       c.CreateGetPartsByAllStatesQueryHandler(),
	}, registry, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRetryPackingCodesCommandHandler(),
		c.CreateSweepDeliveriesCommandHandler(),
		jobs.Schedules{
			PackingCodes:     c.config.PackingCodeJob,
			DeliverySweep:    c.config.DeliveryJob,
			PackingCodeBatch: c.config.RetryBatchSize,
		},
		c.logger,
	)
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncPartUoWFactory func() commands.PartUoW

func (f FuncPartUoWFactory) Create() commands.PartUoW {
	return f()
}

type FuncProjectUoWFactory func() commands.ProjectUoW

func (f FuncProjectUoWFactory) Create() commands.ProjectUoW {
	return f()
}

type FuncOperatorUoWFactory func() commands.OperatorUoW

func (f FuncOperatorUoWFactory) Create() commands.OperatorUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}
