package queries

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/pgerr"

	"gorm.io/gorm"
)

// partOrder puts the parts whose project installs first at the top of the board.
const partOrder = `ORDER BY pr.installation_date ASC NULLS LAST, p.id ASC`

type GetPartsByStateQueryHandler struct {
	db *gorm.DB
}

func NewGetPartsByStateQueryHandler(db *gorm.DB) GetPartsByStateQueryHandler {
	return GetPartsByStateQueryHandler{db: db}
}

// Handle returns the summaries of every part in the requested state, sorted by
// project installation date with undated projects last, then by part id.
func (h GetPartsByStateQueryHandler) Handle(ctx context.Context, query GetPartsByStateQuery) ([]PartSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(partSummarySelect+`
		WHERE p.state = ?
	`+partOrder, query.State().String()).Rows()
	if err != nil {
		return nil, pgerr.Classify("load parts by state", err)
	}
	defer rows.Close()

	return scanPartSummaries(rows)
}
