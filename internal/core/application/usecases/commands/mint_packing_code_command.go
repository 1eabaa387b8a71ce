package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrMintPackingCodeCommandIsNotConstructed = errors.New(
	"MintPackingCodeCommand must be created via NewMintPackingCodeCommand constructor",
)

// MintPackingCodeCommand requests the packing code of a packed part.
type MintPackingCodeCommand struct { //nolint:recvcheck //using for validation
	partID kernel.UUID
	guard  guard.ConstructorGuard
}

// NewMintPackingCodeCommand creates a mint command for partID.
func NewMintPackingCodeCommand(partID kernel.UUID) (MintPackingCodeCommand, error) {
	if err := partID.Validate(); err != nil {
		return MintPackingCodeCommand{}, err
	}
	return MintPackingCodeCommand{partID: partID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c MintPackingCodeCommand) Validate() error {
	return c.guard.Validate(ErrMintPackingCodeCommandIsNotConstructed)
}

func (c MintPackingCodeCommand) PartID() kernel.UUID {
	return c.partID
}

// MintPackingCodeResult is the payload and the storage path of the rendered image.
type MintPackingCodeResult struct {
	Payload string
	Path    string
}
