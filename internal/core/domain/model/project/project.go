// Package project contains the Project aggregate. A project owns the ids of its
// parts; parts only carry the project id back, never a live reference.
package project

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

const (
	MinClientAliasLength = 3
	MaxClientAliasLength = 50
)

// ErrProjectIsNotConstructed is returned when a Project bypassed its constructors.
var ErrProjectIsNotConstructed = errors.New("Project must be created via NewProject or RestoreProject constructor")

// Project is a customer order of fabricated parts with an optional installation date.
type Project struct {
	id               int64
	clientAlias      string
	contact          string
	installationDate *time.Time
	createdAt        time.Time
	partIDs          []kernel.UUID
	guard            guard.ConstructorGuard
}

// NewProject creates an unsaved project; the store assigns its id.
//
// Example:
//
//	prj, err := project.NewProject("ACME-North", "jane@acme.test", &installAt, clock.Now())
func NewProject(clientAlias, contact string, installationDate *time.Time, createdAt time.Time) (*Project, error) {
	p := &Project{
		contact: strings.TrimSpace(contact),
		partIDs: make([]kernel.UUID, 0),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setClientAlias(clientAlias),
		p.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	p.setInstallationDate(installationDate)

	return p, nil
}

// RestoreProject rebuilds a project and the ids of its parts from persistence.
func RestoreProject(
	id int64,
	clientAlias string,
	contact string,
	installationDate *time.Time,
	createdAt time.Time,
	partIDs []kernel.UUID,
) (*Project, error) {
	p := &Project{
		contact: contact,
		partIDs: make([]kernel.UUID, 0, len(partIDs)),
		guard:   guard.NewConstructorGuard(),
	}

	if id <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive id", id))
	}
	p.id = id

	if err := errors.Join(
		p.setClientAlias(clientAlias),
		p.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	p.setInstallationDate(installationDate)

	for _, partID := range partIDs {
		if err := p.AddPart(partID); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Validate ensures the project was properly constructed.
func (p *Project) Validate() error {
	if p == nil {
		return ErrProjectIsNotConstructed
	}
	return p.guard.Validate(ErrProjectIsNotConstructed)
}

// ID returns the store-assigned id, 0 before the first save.
func (p *Project) ID() int64 {
	return p.id
}

// ClientAlias returns the short customer name printed on packing codes.
func (p *Project) ClientAlias() string {
	return p.clientAlias
}

// Contact returns the customer contact.
func (p *Project) Contact() string {
	return p.contact
}

// InstallationDate returns the planned installation date, or nil.
func (p *Project) InstallationDate() *time.Time {
	if p.installationDate == nil {
		return nil
	}
	at := *p.installationDate
	return &at
}

// CreatedAt returns the registration time.
func (p *Project) CreatedAt() time.Time {
	return p.createdAt
}

// PartIDs returns a copy of the owned part ids in registration order.
func (p *Project) PartIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(p.partIDs))
	copy(out, p.partIDs)
	return out
}

// AssignID stores the id generated by the store. It can be called once.
func (p *Project) AssignID(id int64) error {
	if p.id != 0 {
		return errs.NewInvalidStateError("project", fmt.Sprintf("id %d", p.id), errors.New("id already assigned"))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive id", id))
	}
	p.id = id
	return nil
}

// AddPart records that the project owns partID. Duplicates are rejected.
func (p *Project) AddPart(partID kernel.UUID) error {
	if err := partID.Validate(); err != nil {
		return err
	}
	for _, existing := range p.partIDs {
		if existing.IsEqual(partID) {
			return errs.NewValueIsInvalidErrorWithCause("partID", fmt.Errorf("%s already belongs to the project", partID))
		}
	}
	p.partIDs = append(p.partIDs, partID)
	return nil
}

func (p *Project) setClientAlias(alias string) error {
	alias = strings.TrimSpace(alias)
	n := utf8.RuneCountInString(alias)
	if n < MinClientAliasLength || n > MaxClientAliasLength {
		return errs.NewValueIsOutOfRangeError("clientAlias length", n, MinClientAliasLength, MaxClientAliasLength)
	}
	p.clientAlias = alias
	return nil
}

func (p *Project) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	p.createdAt = createdAt.UTC()
	return nil
}

func (p *Project) setInstallationDate(at *time.Time) {
	if at == nil || at.IsZero() {
		p.installationDate = nil
		return
	}
	utc := at.UTC()
	p.installationDate = &utc
}
