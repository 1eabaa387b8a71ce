package queries

import (
	"context"
	"database/sql"
	"errors"

	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/tracking"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOperatorMetricsQueryHandler loads closed trackings in the window and hands
// them to the MetricsAggregator. It reads only; nothing is written.
type GetOperatorMetricsQueryHandler struct {
	db         *gorm.DB
	clock      kernel.Clock
	windowDays int
	aggregator services.MetricsAggregator
}

// NewGetOperatorMetricsQueryHandler creates a handler. windowDays <= 0 falls back
// to services.DefaultMetricsWindowDays.
func NewGetOperatorMetricsQueryHandler(db *gorm.DB, clock kernel.Clock, windowDays int) GetOperatorMetricsQueryHandler {
	if windowDays <= 0 {
		windowDays = services.DefaultMetricsWindowDays
	}
	return GetOperatorMetricsQueryHandler{
		db:         db,
		clock:      clock,
		windowDays: windowDays,
		aggregator: services.NewMetricsAggregator(),
	}
}

// Handle returns the metrics of the operator, or an ObjectNotFoundError for an
// unknown operator.
func (h GetOperatorMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetOperatorMetricsQuery,
) (services.OperatorMetrics, error) {
	if err := query.Validate(); err != nil {
		return services.OperatorMetrics{}, err
	}

	if err := ensureOperatorExists(ctx, h.db, query.OperatorID()); err != nil {
		return services.OperatorMetrics{}, err
	}

	window := h.window(query)

	rows, err := h.db.WithContext(ctx).Raw(trackingViewSelect+`
		WHERE t.operator_id = ?
		  AND NOT t.is_active
		  AND t.end_time BETWEEN ? AND ?
		ORDER BY t.end_time, t.id
	`, query.OperatorID(), window.From, window.To).Rows()
	if err != nil {
		return services.OperatorMetrics{}, pgerr.Classify("load operator metrics", err)
	}
	defer rows.Close()

	views, err := scanTrackingViews(rows)
	if err != nil {
		return services.OperatorMetrics{}, err
	}

	trackings := make([]*tracking.TaskTracking, 0, len(views))
	for _, view := range views {
		t, err := view.toTracking()
		if err != nil {
			return services.OperatorMetrics{}, err
		}
		trackings = append(trackings, t)
	}

	return h.aggregator.Aggregate(query.OperatorID(), window, trackings), nil
}

func (h GetOperatorMetricsQueryHandler) window(query GetOperatorMetricsQuery) services.Window {
	to := h.clock.Now().UTC()
	if query.To() != nil {
		to = query.To().UTC()
	}

	window := services.LastDays(to, h.windowDays)
	if query.From() != nil {
		window.From = query.From().UTC()
	}
	return window
}

func ensureOperatorExists(ctx context.Context, db *gorm.DB, operatorID int64) error {
	var id int64
	err := db.WithContext(ctx).Raw(`SELECT id FROM operators WHERE id = ?`, operatorID).Row().Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("operator", operatorID)
		}
		return pgerr.Classify("load operator", err)
	}
	return nil
}
