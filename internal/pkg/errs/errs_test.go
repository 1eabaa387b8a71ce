package errs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("part", "123")

		assert.Equal(t, "part", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("row vanished")
		err := errs.NewObjectNotFoundErrorWithCause("operator", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: operator, ID is: 42 (cause: row vanished)",
			err.Error())
	})
}

func TestValueErrors(t *testing.T) {
	t.Run("invalid", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("clientAlias", errors.New("too short"))
		assert.Equal(t, "value is invalid: clientAlias (cause: too short)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("partType")
		assert.Equal(t, "value is required: partType", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("out of range keeps a single line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("weight", "1\n2", 0, 10)
		assert.Equal(t, "value is out of range: 1 2 is weight, min value is 0, max value is 10", err.Error())
		assert.NotContains(t, err.Error(), "\n")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestEngineErrorMessages(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
		sentinel error
	}{
		{
			name:     "already_assigned",
			err:      errs.NewAlreadyAssignedError("p-1"),
			expected: "part is already assigned: p-1",
			sentinel: errs.ErrAlreadyAssigned,
		},
		{
			name:     "operator_busy",
			err:      errs.NewOperatorBusyError(int64(7)),
			expected: "operator is busy: 7",
			sentinel: errs.ErrOperatorBusy,
		},
		{
			name:     "no_active_task",
			err:      errs.NewNoActiveTaskError("p-1", int64(7)),
			expected: "no active task: part p-1, operator 7",
			sentinel: errs.ErrNoActiveTask,
		},
		{
			name:     "description_required",
			err:      errs.NewDescriptionRequiredError("description"),
			expected: "description is required: description",
			sentinel: errs.ErrDescriptionRequired,
		},
		{
			name:     "already_confirmed",
			err:      errs.NewAlreadyConfirmedError("p-1"),
			expected: "delivery is already confirmed: p-1",
			sentinel: errs.ErrAlreadyConfirmed,
		},
		{
			name:     "invalid_payload_is_single_line",
			err:      errs.NewInvalidPayloadError("bad\nline"),
			expected: "payload is invalid: bad line",
			sentinel: errs.ErrInvalidPayload,
		},
		{
			name:     "invalid_state",
			err:      errs.NewInvalidStateError("part", "INSTALLED", errors.New("no default successor")),
			expected: "state is invalid: part is INSTALLED (cause: no default successor)",
			sentinel: errs.ErrInvalidState,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
			require.ErrorIs(t, tc.err, tc.sentinel)
		})
	}
}

func TestStorageUnavailableError_KeepsCause(t *testing.T) {
	err := errs.NewStorageUnavailableError("begin", context.DeadlineExceeded)

	require.ErrorIs(t, err, errs.ErrStorageUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "storage is unavailable: begin (cause: context deadline exceeded)", err.Error())
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind errs.Kind
	}{
		{"nil", nil, errs.KindInternal},
		{"unknown", errors.New("boom"), errs.KindInternal},
		{"not_found", errs.NewObjectNotFoundError("part", "x"), errs.KindNotFound},
		{"already_assigned", errs.NewAlreadyAssignedError("x"), errs.KindAlreadyAssigned},
		{"operator_busy", errs.NewOperatorBusyError(1), errs.KindOperatorBusy},
		{"no_active_task", errs.NewNoActiveTaskError("x", 1), errs.KindNoActiveTask},
		{"description_required", errs.NewDescriptionRequiredError("d"), errs.KindDescriptionRequired},
		{"already_confirmed", errs.NewAlreadyConfirmedError("x"), errs.KindAlreadyConfirmed},
		{"invalid_payload", errs.NewInvalidPayloadError("x"), errs.KindInvalidPayload},
		{"invalid_state", errs.NewInvalidStateError("part", "X", nil), errs.KindInvalidState},
		{"validation", errs.NewValueIsRequiredError("x"), errs.KindValidation},
		{"storage", errs.NewStorageUnavailableError("commit", errors.New("conn reset")), errs.KindStorageUnavailable},
		{"wrapped", fmt.Errorf("take part: %w", errs.NewOperatorBusyError(3)), errs.KindOperatorBusy},
		{
			"joined_engine_kind_wins",
			errors.Join(errs.NewValueIsInvalidError("x"), errs.NewInvalidPayloadError("y")),
			errs.KindInvalidPayload,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, errs.KindOf(tc.err))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, errs.IsRetryable(errs.NewStorageUnavailableError("commit", nil)))
	assert.False(t, errs.IsRetryable(errs.NewAlreadyAssignedError("x")))
	assert.False(t, errs.IsRetryable(nil))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "OperatorBusy", errs.KindOperatorBusy.String())
	assert.Equal(t, "Internal", errs.Kind(999).String())
}
