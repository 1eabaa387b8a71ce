package queries

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/pgerr"

	"gorm.io/gorm"
)

type GetTrackingsQueryHandler struct {
	db *gorm.DB
}

func NewGetTrackingsQueryHandler(db *gorm.DB) GetTrackingsQueryHandler {
	return GetTrackingsQueryHandler{db: db}
}

// Handle returns the matching trackings, most recently started first.
func (h GetTrackingsQueryHandler) Handle(ctx context.Context, query GetTrackingsQuery) ([]TrackingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, arg := query.condition()
	rows, err := h.db.WithContext(ctx).Raw(trackingViewSelect+`
		WHERE `+where+`
		ORDER BY t.start_time DESC, t.id DESC
	`, arg).Rows()
	if err != nil {
		return nil, pgerr.Classify("load trackings", err)
	}
	defer rows.Close()

	return scanTrackingViews(rows)
}
