package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/delivery"
	"shopfloor/internal/pkg/guard"
)

var ErrScanDeliveryCodeCommandIsNotConstructed = errors.New(
	"ScanDeliveryCodeCommand must be created via NewScanDeliveryCodeCommand constructor",
)

// ScanDeliveryCodeCommand carries a scanned packing code.
type ScanDeliveryCodeCommand struct { //nolint:recvcheck //using for validation
	code  delivery.PackingCode
	guard guard.ConstructorGuard
}

// NewScanDeliveryCodeCommand parses payload. Malformed payloads fail with an
// InvalidPayloadError.
func NewScanDeliveryCodeCommand(payload string) (ScanDeliveryCodeCommand, error) {
	code, err := delivery.ParsePackingCode(payload)
	if err != nil {
		return ScanDeliveryCodeCommand{}, err
	}
	return ScanDeliveryCodeCommand{code: code, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ScanDeliveryCodeCommand) Validate() error {
	return c.guard.Validate(ErrScanDeliveryCodeCommandIsNotConstructed)
}

// Code returns the decoded packing code.
func (c ScanDeliveryCodeCommand) Code() delivery.PackingCode {
	return c.code
}
