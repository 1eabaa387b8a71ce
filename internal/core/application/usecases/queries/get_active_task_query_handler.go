package queries

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetActiveTaskQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveTaskQueryHandler(db *gorm.DB) GetActiveTaskQueryHandler {
	return GetActiveTaskQueryHandler{db: db}
}

// Handle returns the open tracking of the operator. An idle operator yields an
// ObjectNotFoundError, as does an unknown one.
func (h GetActiveTaskQueryHandler) Handle(ctx context.Context, query GetActiveTaskQuery) (TrackingView, error) {
	if err := query.Validate(); err != nil {
		return TrackingView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(trackingViewSelect+`
		WHERE t.operator_id = ? AND t.is_active
	`, query.OperatorID()).Rows()
	if err != nil {
		return TrackingView{}, pgerr.Classify("load active task", err)
	}
	defer rows.Close()

	views, err := scanTrackingViews(rows)
	if err != nil {
		return TrackingView{}, err
	}
	if len(views) == 0 {
		return TrackingView{}, errs.NewObjectNotFoundError("active taskTracking for operator", query.OperatorID())
	}

	return views[0], nil
}
