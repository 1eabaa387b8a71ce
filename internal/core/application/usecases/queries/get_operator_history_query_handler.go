package queries

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/pgerr"

	"gorm.io/gorm"
)

// GetOperatorHistoryQueryHandler reads closed trackings of one operator.
type GetOperatorHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOperatorHistoryQueryHandler(db *gorm.DB) GetOperatorHistoryQueryHandler {
	return GetOperatorHistoryQueryHandler{db: db}
}

// Handle returns closed trackings ordered by end time, newest first. An unknown
// operator is an ObjectNotFoundError; an operator without history gets an empty slice.
func (h GetOperatorHistoryQueryHandler) Handle(ctx context.Context, query GetOperatorHistoryQuery) ([]TrackingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := ensureOperatorExists(ctx, h.db, query.OperatorID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(trackingViewSelect+`
		WHERE t.operator_id = ? AND NOT t.is_active
		ORDER BY t.end_time DESC, t.id DESC
		LIMIT ?
	`, query.OperatorID(), query.Limit()).Rows()
	if err != nil {
		return nil, pgerr.Classify("load operator history", err)
	}
	defer rows.Close()

	return scanTrackingViews(rows)
}
