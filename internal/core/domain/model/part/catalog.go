package part

import (
	"errors"
	"fmt"

	"shopfloor/internal/pkg/errs"
)

// Successor is an optional next state. None() marks a state with no default successor.
type Successor struct {
	next State
	ok   bool
}

// To returns a Successor pointing at next.
func To(next State) Successor {
	return Successor{next: next, ok: true}
}

// None returns the empty Successor.
func None() Successor {
	return Successor{}
}

// Catalog is the ordered set of lifecycle states and their default successors.
// It is immutable after construction.
type Catalog struct {
	order      []State
	successors map[State]Successor
	exceptions map[State]bool
}

// NewCatalog builds a catalog and fails fast when the mapping is not exhaustive.
//
// Rules checked:
//   - order lists each state once and only valid states
//   - successors has exactly one entry per state in order (None() included)
//   - every successor target is a state in order
//   - exception states are in order and are never a default successor
//
// Example:
//
//	c, err := part.NewCatalog(
//	    []part.State{part.Created, part.InProduction},
//	    map[part.State]part.Successor{
//	        part.Created:      part.To(part.InProduction),
//	        part.InProduction: part.None(),
//	    },
//	    nil,
//	)
func NewCatalog(order []State, successors map[State]Successor, exceptions []State) (*Catalog, error) {
	known := make(map[State]bool, len(order))
	var problems []error

	for _, s := range order {
		if err := s.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if known[s] {
			problems = append(problems, fmt.Errorf("state %s listed twice", s))
		}
		known[s] = true
	}

	for _, s := range order {
		successor, mapped := successors[s]
		if !mapped {
			problems = append(problems, fmt.Errorf("state %s has no successor entry", s))
			continue
		}
		if successor.ok && !known[successor.next] {
			problems = append(problems, fmt.Errorf("successor %s of %s is not in the catalog", successor.next, s))
		}
	}
	for s := range successors {
		if !known[s] {
			problems = append(problems, fmt.Errorf("successor entry for unlisted state %s", s))
		}
	}

	exceptionSet := make(map[State]bool, len(exceptions))
	for _, s := range exceptions {
		if !known[s] {
			problems = append(problems, fmt.Errorf("exception state %s is not in the catalog", s))
		}
		exceptionSet[s] = true
	}
	for from, successor := range successors {
		if successor.ok && exceptionSet[successor.next] {
			problems = append(problems, fmt.Errorf("exception state %s is the default successor of %s", successor.next, from))
		}
	}

	if len(problems) > 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("catalog", errors.Join(problems...))
	}

	ordered := make([]State, len(order))
	copy(ordered, order)
	mapped := make(map[State]Successor, len(successors))
	for k, v := range successors {
		mapped[k] = v
	}

	return &Catalog{
		order:      ordered,
		successors: mapped,
		exceptions: exceptionSet,
	}, nil
}

// MustNewCatalog is NewCatalog that panics on an invalid mapping.
func MustNewCatalog(order []State, successors map[State]Successor, exceptions []State) *Catalog {
	c, err := NewCatalog(order, successors, exceptions)
	if err != nil {
		panic(err)
	}
	return c
}

var defaultCatalog = MustNewCatalog(
	[]State{
		Created,
		InProduction,
		QualityCheck,
		WeldedFlapped,
		SurfacePrep,
		Painted,
		Packed,
		InTransitToSite,
		Installed,
		Missing,
		ReturnedOutOfSpec,
		RepaintNeeded,
		RepairNeeded,
	},
	map[State]Successor{
		Created:           To(InProduction),
		InProduction:      To(QualityCheck),
		QualityCheck:      To(WeldedFlapped),
		WeldedFlapped:     To(SurfacePrep),
		SurfacePrep:       To(Painted),
		Painted:           To(Packed),
		Packed:            To(InTransitToSite),
		InTransitToSite:   To(Installed),
		Installed:         None(),
		Missing:           None(),
		ReturnedOutOfSpec: None(),
		RepaintNeeded:     To(Painted),
		RepairNeeded:      To(QualityCheck),
	},
	[]State{Missing, ReturnedOutOfSpec, RepaintNeeded, RepairNeeded},
)

// DefaultCatalog returns the shop-floor pipeline.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// DefaultNext returns the default successor of s, or false when s has none.
func (c *Catalog) DefaultNext(s State) (State, bool) {
	successor, ok := c.successors[s]
	if !ok || !successor.ok {
		return Unknown, false
	}
	return successor.next, true
}

// Contains reports whether s is part of the catalog.
func (c *Catalog) Contains(s State) bool {
	_, ok := c.successors[s]
	return ok
}

// IsException reports whether s is reachable only through a manual transition.
func (c *Catalog) IsException(s State) bool {
	return c.exceptions[s]
}

// AllStates returns every state in catalog order.
func (c *Catalog) AllStates() []State {
	out := make([]State, len(c.order))
	copy(out, c.order)
	return out
}

// ObservedStates returns the exception states in catalog order.
func (c *Catalog) ObservedStates() []State {
	out := make([]State, 0, len(c.exceptions))
	for _, s := range c.order {
		if c.exceptions[s] {
			out = append(out, s)
		}
	}
	return out
}

// BoardStates returns the shop-floor states shown on the work board: the pipeline
// from the first factory step up to, but not including, the completed state.
// CREATED and IN_PRODUCTION are office states and are left out.
func (c *Catalog) BoardStates() []State {
	out := make([]State, 0, len(c.order))
	for _, s := range c.order {
		if c.exceptions[s] || s == Created || s == InProduction {
			continue
		}
		if _, hasNext := c.DefaultNext(s); !hasNext {
			continue
		}
		out = append(out, s)
	}
	return out
}
