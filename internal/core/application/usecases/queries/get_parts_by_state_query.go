package queries

import (
	"errors"

	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/guard"
)

var ErrGetPartsByStateQueryIsNotConstructed = errors.New(
	"GetPartsByStateQuery must be created via NewGetPartsByStateQuery constructor",
)

// GetPartsByStateQuery lists the parts currently in one state.
type GetPartsByStateQuery struct {
	state part.State
	guard guard.ConstructorGuard
}

func NewGetPartsByStateQuery(state part.State) (GetPartsByStateQuery, error) {
	if err := state.Validate(); err != nil {
		return GetPartsByStateQuery{}, err
	}
	return GetPartsByStateQuery{state: state, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPartsByStateQuery) Validate() error {
	return q.guard.Validate(ErrGetPartsByStateQueryIsNotConstructed)
}

func (q GetPartsByStateQuery) State() part.State {
	return q.state
}
