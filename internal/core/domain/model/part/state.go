package part

import (
	"fmt"
	"strings"

	"shopfloor/internal/pkg/errs"
)

// State is a lifecycle state of a part. States are persisted by name.
type State int

const (
	// Unknown is the zero value and never a valid state.
	Unknown State = iota
	Created
	InProduction
	QualityCheck
	WeldedFlapped
	SurfacePrep
	Painted
	Packed
	InTransitToSite
	Installed
	Missing
	ReturnedOutOfSpec
	RepaintNeeded
	RepairNeeded
)

// stateNames holds the persisted name of every valid state.
func stateNames() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Created:           "CREATED",
		InProduction:      "IN_PRODUCTION",
		QualityCheck:      "QUALITY_CHECK",
		WeldedFlapped:     "WELDED_FLAPPED",
		SurfacePrep:       "SURFACE_PREP",
		Painted:           "PAINTED",
		Packed:            "PACKED",
		InTransitToSite:   "IN_TRANSIT_TO_SITE",
		Installed:         "INSTALLED",
		Missing:           "MISSING",
		ReturnedOutOfSpec: "RETURNED_OUT_OF_SPEC",
		RepaintNeeded:     "REPAINT_NEEDED",
		RepairNeeded:      "REPAIR_NEEDED",
	}
}

// stateLabels holds the operator-facing label of every valid state.
func stateLabels() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Created:           "Created",
		InProduction:      "In production",
		QualityCheck:      "Factory quality check",
		WeldedFlapped:     "Welded and flapped",
		SurfacePrep:       "Phosphated and sanded",
		Painted:           "Painted",
		Packed:            "Packed",
		InTransitToSite:   "In transit to site",
		Installed:         "Installed",
		Missing:           "Missing",
		ReturnedOutOfSpec: "Returned out of spec",
		RepaintNeeded:     "Repaint needed",
		RepairNeeded:      "Repair needed",
	}
}

// ParseState converts a persisted or user-supplied name into a State.
// Matching ignores case and surrounding blanks.
//
// Example:
//
//	s, err := part.ParseState("repair_needed") // part.RepairNeeded
func ParseState(name string) (State, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for state, candidate := range stateNames() {
		if candidate == normalized {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"state",
		fmt.Errorf("%q is not a known state", name),
	)
}

// Validate rejects Unknown and out-of-range values.
func (s State) Validate() error {
	if _, ok := stateNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the persisted name, or "UNKNOWN".
func (s State) String() string {
	if name, ok := stateNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Label returns the operator-facing label.
func (s State) Label() string {
	if label, ok := stateLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
