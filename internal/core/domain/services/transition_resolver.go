package services

import (
	"errors"
	"fmt"
	"time"

	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"
)

// CureWindow is how long paint is expected to cure before a part is packed.
const CureWindow = 12 * time.Hour

// Resolution is the outcome of resolving the successor of a state.
type Resolution struct {
	From part.State
	Next part.State

	// CureWindowElapsed is only meaningful when From is part.Painted. It reports
	// whether CureWindow had passed; Next is part.Packed either way.
	CureWindowElapsed bool
}

// TransitionResolver computes the next state of a part from the state catalog.
//
// Example:
//
//	resolver := services.NewTransitionResolver(part.DefaultCatalog())
//	res, err := resolver.Resolve(task.StateAtStart(), task.StartTime(), clock.Now())
//	if err != nil {
//	    return err // the state has no default successor
//	}
//	_ = task.Complete(res.Next, now)
type TransitionResolver struct {
	catalog *part.Catalog
}

// NewTransitionResolver creates a resolver over catalog.
func NewTransitionResolver(catalog *part.Catalog) TransitionResolver {
	return TransitionResolver{catalog: catalog}
}

// DefaultNext returns the catalog successor of s.
func (r TransitionResolver) DefaultNext(s part.State) (part.State, bool) {
	return r.catalog.DefaultNext(s)
}

// Resolve returns the default successor of from.
//
// Parameters:
//   - from: the state the part was in when the task was taken
//   - startedAt: when the task was taken
//   - now: the completion time
//
// Returns:
//   - Resolution: the successor and, for painted parts, whether the cure window passed
//   - error: InvalidStateError when from has no default successor
//
// A painted part always resolves to packed. The cure window is measured but does
// not gate the transition.
func (r TransitionResolver) Resolve(from part.State, startedAt, now time.Time) (Resolution, error) {
	next, ok := r.catalog.DefaultNext(from)
	if !ok {
		return Resolution{}, errs.NewInvalidStateError(
			"stateAtStart", from.String(), fmt.Errorf("%s has no default successor", from),
		)
	}

	res := Resolution{From: from, Next: next}
	if from == part.Painted {
		res.CureWindowElapsed = now.Sub(startedAt) >= CureWindow
		res.Next = part.Packed
	}

	return res, nil
}

// ResolveManual accepts any state known to the catalog as the target of a manual
// transition. Adjacency is not checked.
func (r TransitionResolver) ResolveManual(target part.State) (part.State, error) {
	if err := target.Validate(); err != nil {
		return part.Unknown, err
	}
	if !r.catalog.Contains(target) {
		return part.Unknown, errs.NewInvalidStateError(
			"targetState", target.String(), errors.New("state is not in the catalog"),
		)
	}
	return target, nil
}
