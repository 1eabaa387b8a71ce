package part

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

// ErrPartIsNotConstructed is returned when a Part was not built by NewPart or RestorePart.
var ErrPartIsNotConstructed = errors.New("Part must be created via NewPart or RestorePart constructor")

// Part is the aggregate root for a physical fabricated item on the shop floor.
//
// Part follows these invariants:
//   - The identifier is a valid UUID and never changes
//   - The part belongs to exactly one project (positive project id)
//   - The state is always a valid catalog state
//   - readyForDelivery becomes true at most once, and only while the part is PACKED
//
// Part holds no reference to its project beyond the project id.
type Part struct {
	id               kernel.UUID
	projectID        int64
	descriptor       Descriptor
	state            State
	observations     string
	readyForDelivery bool
	receivedAt       *time.Time
	packingCodePath  string
	guard            guard.ConstructorGuard
}

// NewPart creates a part in the CREATED state.
//
// Example:
//
//	d, _ := part.NewDescriptor("Side panel", "Steel 2mm", nil)
//	p, err := part.NewPart(kernel.NewUUID(), projectID, d, "")
func NewPart(id kernel.UUID, projectID int64, descriptor Descriptor, observations string) (*Part, error) {
	p := &Part{
		state: Created,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setProjectID(projectID),
		p.setDescriptor(descriptor),
	); err != nil {
		return nil, err
	}
	p.observations = strings.TrimSpace(observations)

	return p, nil
}

// RestorePart rebuilds a part from persistence.
func RestorePart(
	id kernel.UUID,
	projectID int64,
	descriptor Descriptor,
	state State,
	observations string,
	readyForDelivery bool,
	receivedAt *time.Time,
	packingCodePath string,
) (*Part, error) {
	p := &Part{
		observations:     observations,
		readyForDelivery: readyForDelivery,
		packingCodePath:  packingCodePath,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setProjectID(projectID),
		p.setDescriptor(descriptor),
		p.setState(state),
	); err != nil {
		return nil, err
	}
	if receivedAt != nil {
		at := receivedAt.UTC()
		p.receivedAt = &at
	}

	return p, nil
}

// Validate ensures the part was properly constructed.
func (p *Part) Validate() error {
	if p == nil {
		return ErrPartIsNotConstructed
	}
	return p.guard.Validate(ErrPartIsNotConstructed)
}

// IsEqual compares parts by identifier.
func (p *Part) IsEqual(other *Part) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the part identifier.
func (p *Part) ID() kernel.UUID {
	return p.id
}

// ProjectID returns the owning project id.
func (p *Part) ProjectID() int64 {
	return p.projectID
}

// Descriptor returns the part type, material and weight.
func (p *Part) Descriptor() Descriptor {
	return p.descriptor
}

// State returns the current lifecycle state.
func (p *Part) State() State {
	return p.state
}

// Observations returns the free-text notes.
func (p *Part) Observations() string {
	return p.observations
}

// IsReadyForDelivery reports whether the packing code has been scanned.
func (p *Part) IsReadyForDelivery() bool {
	return p.readyForDelivery
}

// ReceivedAt returns when the part was scanned into the shop floor, or nil.
func (p *Part) ReceivedAt() *time.Time {
	if p.receivedAt == nil {
		return nil
	}
	at := *p.receivedAt
	return &at
}

// PackingCodePath returns the storage path of the rendered packing code, or "".
func (p *Part) PackingCodePath() string {
	return p.packingCodePath
}

// HasPackingCode reports whether a packing code image was stored for the part.
func (p *Part) HasPackingCode() bool {
	return p.packingCodePath != ""
}

// MoveTo sets the current state. Which state is legal is decided by the caller:
// the default path through the catalog or a manual transition, which accepts any
// catalog state.
func (p *Part) MoveTo(target State) error {
	if err := p.setState(target); err != nil {
		return err
	}
	return nil
}

// ConfirmDelivery sets readyForDelivery.
//
// Returns:
//   - AlreadyConfirmedError if the flag is already set
//   - InvalidStateError if the part is not PACKED
func (p *Part) ConfirmDelivery() error {
	if p.readyForDelivery {
		return errs.NewAlreadyConfirmedError(p.id.String())
	}
	if p.state != Packed {
		return errs.NewInvalidStateError(
			"part",
			p.state.String(),
			fmt.Errorf("delivery can only be confirmed while %s", Packed),
		)
	}
	p.readyForDelivery = true
	return nil
}

// MarkReceived records the shop-floor reception time. A later scan overwrites it.
func (p *Part) MarkReceived(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("receivedAt")
	}
	utc := at.UTC()
	p.receivedAt = &utc
	return nil
}

// AttachPackingCode records where the rendered packing code was stored.
func (p *Part) AttachPackingCode(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errs.NewValueIsRequiredError("packingCodePath")
	}
	p.packingCodePath = path
	return nil
}

func (p *Part) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Part) setProjectID(projectID int64) error {
	if projectID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("projectID", fmt.Errorf("%d is not a positive id", projectID))
	}
	p.projectID = projectID
	return nil
}

func (p *Part) setDescriptor(descriptor Descriptor) error {
	if err := descriptor.Validate(); err != nil {
		return err
	}
	p.descriptor = descriptor
	return nil
}

func (p *Part) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	p.state = state
	return nil
}
