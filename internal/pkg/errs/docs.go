// Package errs provides standardized error types for the shop-floor engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Value errors raised by domain constructors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError and ObjectNotFoundError
//   - Engine errors raised by the assignment coordinator and the delivery handshake:
//     AlreadyAssignedError, OperatorBusyError, NoActiveTaskError, DescriptionRequiredError,
//     AlreadyConfirmedError, InvalidPayloadError, InvalidStateError and StorageUnavailableError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf collapses any error chain into a stable Kind so that inbound adapters can pick a
// response without inspecting free-text messages. Only StorageUnavailable is retryable.
package errs
