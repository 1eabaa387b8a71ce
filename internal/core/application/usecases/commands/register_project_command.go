package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrRegisterProjectCommandIsNotConstructed = errors.New(
	"RegisterProjectCommand must be created via NewRegisterProjectCommand constructor",
)

// PartSpec describes one part of a project being registered.
type PartSpec struct {
	PartTypeName string
	MaterialName string
	WeightKg     *float64
	Observations string
}

// RegisterProjectCommand registers a project together with its part list.
//
// Example:
//
//	w := 12.5
//	cmd, err := NewRegisterProjectCommand("ACME North", "ops@acme.test", nil, []PartSpec{
//	    {PartTypeName: "Bracket A", MaterialName: "S275", WeightKg: &w},
//	    {PartTypeName: "Beam B", MaterialName: "S355"},
//	})
type RegisterProjectCommand struct { //nolint:recvcheck //using for validation
	clientAlias      string
	contact          string
	installationDate *time.Time
	parts            []PartSpec
	descriptors      []part.Descriptor

	guard guard.ConstructorGuard
}

// NewRegisterProjectCommand validates the part list up front; the alias is
// validated by the project aggregate.
func NewRegisterProjectCommand(
	clientAlias string,
	contact string,
	installationDate *time.Time,
	parts []PartSpec,
) (RegisterProjectCommand, error) {
	cmd := RegisterProjectCommand{
		clientAlias:      strings.TrimSpace(clientAlias),
		contact:          contact,
		installationDate: installationDate,
		guard:            guard.NewConstructorGuard(),
	}

	if len(parts) == 0 {
		return RegisterProjectCommand{}, errs.NewValueIsRequiredError("parts")
	}

	var specErrs []error
	for i, spec := range parts {
		d, err := part.NewDescriptor(spec.PartTypeName, spec.MaterialName, spec.WeightKg)
		if err != nil {
			specErrs = append(specErrs, fmt.Errorf("parts[%d]: %w", i, err))
			continue
		}
		cmd.descriptors = append(cmd.descriptors, d)
	}
	if err := errors.Join(specErrs...); err != nil {
		return RegisterProjectCommand{}, err
	}

	cmd.parts = append([]PartSpec(nil), parts...)
	return cmd, nil
}

func (c RegisterProjectCommand) Validate() error {
	return c.guard.Validate(ErrRegisterProjectCommandIsNotConstructed)
}

func (c RegisterProjectCommand) ClientAlias() string         { return c.clientAlias }
func (c RegisterProjectCommand) Contact() string             { return c.contact }
func (c RegisterProjectCommand) InstallationDate() *time.Time { return c.installationDate }

// Parts returns the part specs in registration order.
func (c RegisterProjectCommand) Parts() []PartSpec {
	return append([]PartSpec(nil), c.parts...)
}

func (c RegisterProjectCommand) descriptor(i int) part.Descriptor {
	return c.descriptors[i]
}
