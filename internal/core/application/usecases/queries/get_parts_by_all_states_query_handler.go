package queries

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/core/domain/model/part"

	"gorm.io/gorm"
)

// GetPartsByAllStatesQueryHandler groups parts into the catalog's board states
// plus one OBSERVED bucket for the exception states. CREATED, IN_PRODUCTION and
// INSTALLED parts are not on the board.
type GetPartsByAllStatesQueryHandler struct {
	db      *gorm.DB
	catalog *part.Catalog
}

func NewGetPartsByAllStatesQueryHandler(db *gorm.DB, catalog *part.Catalog) GetPartsByAllStatesQueryHandler {
	return GetPartsByAllStatesQueryHandler{db: db, catalog: catalog}
}

// Handle returns one bucket per board state in catalog order, followed by the
// OBSERVED bucket. Empty buckets are kept so the board layout is stable.
func (h GetPartsByAllStatesQueryHandler) Handle(ctx context.Context, query GetPartsByAllStatesQuery) ([]StateBucket, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	boardStates := h.catalog.BoardStates()
	observedStates := h.catalog.ObservedStates()

	buckets := make([]StateBucket, 0, len(boardStates)+1)
	index := make(map[part.State]int, len(boardStates)+len(observedStates))
	names := make([]string, 0, len(boardStates)+len(observedStates))

	for _, s := range boardStates {
		index[s] = len(buckets)
		names = append(names, s.String())
		buckets = append(buckets, StateBucket{Key: s.String(), Label: s.Label(), Parts: make([]PartSummary, 0)})
	}

	observed := len(buckets)
	buckets = append(buckets, StateBucket{Key: ObservedBucket, Label: "Observed", Parts: make([]PartSummary, 0)})
	for _, s := range observedStates {
		index[s] = observed
		names = append(names, s.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(partSummarySelect+`
		WHERE p.state IN ?
	`+partOrder, names).Rows()
	if err != nil {
		return nil, pgerr.Classify("load parts by all states", err)
	}
	defer rows.Close()

	summaries, err := scanPartSummaries(rows)
	if err != nil {
		return nil, err
	}

	for _, summary := range summaries {
		i, ok := index[summary.State]
		if !ok {
			continue
		}
		buckets[i].Parts = append(buckets[i].Parts, summary)
	}

	return buckets, nil
}
