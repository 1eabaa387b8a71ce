package queries

import (
	"errors"

	"shopfloor/internal/pkg/guard"
)

// ObservedBucket is the key of the bucket that collects every exception state.
const ObservedBucket = "OBSERVED"

var ErrGetPartsByAllStatesQueryIsNotConstructed = errors.New(
	"GetPartsByAllStatesQuery must be created via NewGetPartsByAllStatesQuery constructor",
)

// GetPartsByAllStatesQuery builds the whole work board in one read.
type GetPartsByAllStatesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetPartsByAllStatesQuery() GetPartsByAllStatesQuery {
	return GetPartsByAllStatesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPartsByAllStatesQuery) Validate() error {
	return q.guard.Validate(ErrGetPartsByAllStatesQueryIsNotConstructed)
}

// StateBucket is one column of the work board.
type StateBucket struct {
	Key   string        `json:"key"`
	Label string        `json:"label"`
	Parts []PartSummary `json:"parts"`
}
