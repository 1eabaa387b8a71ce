package commands

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/delivery"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// DefaultCodeSize is the side length in pixels of a rendered packing code.
const DefaultCodeSize = 300

// MintPackingCodeCommandHandler encodes the packing code of a packed part, hands
// it to the renderer and stores the returned path on the part.
//
// Minting twice renders the same payload to the same file name, so a retry after
// a lost commit is harmless.
type MintPackingCodeCommandHandler struct {
	uowFactory ProjectUoWFactory
	renderer   ports.CodeRenderer
	size       int
}

// NewMintPackingCodeCommandHandler creates a mint handler rendering size x size images.
// A non-positive size falls back to DefaultCodeSize.
func NewMintPackingCodeCommandHandler(
	uowFactory ProjectUoWFactory,
	renderer ports.CodeRenderer,
	size int,
) MintPackingCodeCommandHandler {
	if size <= 0 {
		size = DefaultCodeSize
	}
	return MintPackingCodeCommandHandler{
		uowFactory: uowFactory,
		renderer:   renderer,
		size:       size,
	}
}

// Handle processes the mint command.
func (h MintPackingCodeCommandHandler) Handle(
	ctx context.Context,
	command MintPackingCodeCommand,
) (MintPackingCodeResult, error) {
	if err := command.Validate(); err != nil {
		return MintPackingCodeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MintPackingCodeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partRepo := uow.PartRepository()
	projectRepo := uow.ProjectRepository()

	p, err := partRepo.GetForUpdate(ctx, command.PartID())
	if err != nil {
		return MintPackingCodeResult{}, err
	}
	if p.State() != part.Packed {
		return MintPackingCodeResult{}, errs.NewInvalidStateError(
			"part", p.State().String(), errors.New("only packed parts carry a packing code"),
		)
	}

	prj, err := projectRepo.Get(ctx, p.ProjectID())
	if err != nil {
		return MintPackingCodeResult{}, err
	}

	code, err := delivery.NewPackingCode(p, prj.ClientAlias())
	if err != nil {
		return MintPackingCodeResult{}, err
	}
	payload := code.Encode()

	path, err := h.renderer.Render(ctx, payload, h.size, h.size, code.FileName())
	if err != nil {
		return MintPackingCodeResult{}, err
	}

	if err = p.AttachPackingCode(path); err != nil {
		return MintPackingCodeResult{}, err
	}
	if err = partRepo.Update(ctx, p); err != nil {
		return MintPackingCodeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return MintPackingCodeResult{}, err
	}

	return MintPackingCodeResult{Payload: payload, Path: path}, nil
}
