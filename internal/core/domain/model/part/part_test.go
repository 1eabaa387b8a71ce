package part_test

import (
	"strings"
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDescriptor(t *testing.T) part.Descriptor {
	t.Helper()
	w := 18.25
	d, err := part.NewDescriptor("Side panel", "Steel 2mm", &w)
	require.NoError(t, err)
	return d
}

func TestNewDescriptor(t *testing.T) {
	t.Run("valid_without_weight", func(t *testing.T) {
		d, err := part.NewDescriptor(" Door ", "Aluminium", nil)
		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, "Door", d.PartTypeName())
		assert.Nil(t, d.WeightKg())
	})

	t.Run("weight_is_copied", func(t *testing.T) {
		w := 3.0
		d, err := part.NewDescriptor("Door", "Aluminium", &w)
		require.NoError(t, err)
		w = 9
		assert.InDelta(t, 3.0, *d.WeightKg(), 0.0001)
	})

	t.Run("joins_all_violations", func(t *testing.T) {
		w := -1.0
		_, err := part.NewDescriptor("", " ", &w)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("names_at_max_length", func(t *testing.T) {
		name := strings.Repeat("ñ", part.MaxNameLength)
		d, err := part.NewDescriptor(name, name, nil)
		require.NoError(t, err)
		assert.Equal(t, name, d.MaterialName())
	})

	t.Run("names_over_max_length", func(t *testing.T) {
		long := strings.Repeat("panel lateral ", 250)
		_, err := part.NewDescriptor(long, "Steel", nil)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = part.NewDescriptor("Door", strings.Repeat("x", part.MaxNameLength+1), nil)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var d part.Descriptor
		require.ErrorIs(t, d.Validate(), part.ErrDescriptorIsNotConstructed)
	})
}

func TestNewPart(t *testing.T) {
	t.Run("starts_in_created_state", func(t *testing.T) {
		id := kernel.NewUUID()
		p, err := part.NewPart(id, 7, newDescriptor(t), "  scratch on edge ")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, id.IsEqual(p.ID()))
		assert.Equal(t, int64(7), p.ProjectID())
		assert.Equal(t, part.Created, p.State())
		assert.Equal(t, "scratch on edge", p.Observations())
		assert.False(t, p.IsReadyForDelivery())
		assert.Nil(t, p.ReceivedAt())
		assert.False(t, p.HasPackingCode())
	})

	t.Run("rejects_invalid_input", func(t *testing.T) {
		_, err := part.NewPart(kernel.UUID{}, 0, part.Descriptor{}, "")

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, part.ErrDescriptorIsNotConstructed)
	})

	t.Run("nil_part_is_not_constructed", func(t *testing.T) {
		var p *part.Part
		require.ErrorIs(t, p.Validate(), part.ErrPartIsNotConstructed)
	})
}

func TestRestorePart(t *testing.T) {
	at := time.Date(2024, 5, 2, 9, 30, 0, 0, time.FixedZone("ART", -3*3600))

	p, err := part.RestorePart(kernel.NewUUID(), 3, newDescriptor(t), part.InTransitToSite, "", true, &at, "codes/x.png")

	require.NoError(t, err)
	assert.Equal(t, part.InTransitToSite, p.State())
	assert.True(t, p.IsReadyForDelivery())
	assert.Equal(t, at.UTC(), *p.ReceivedAt())
	assert.Equal(t, "codes/x.png", p.PackingCodePath())

	_, err = part.RestorePart(kernel.NewUUID(), 3, newDescriptor(t), part.Unknown, "", false, nil, "")
	require.Error(t, err)
}

func TestPart_MoveTo(t *testing.T) {
	p, err := part.NewPart(kernel.NewUUID(), 1, newDescriptor(t), "")
	require.NoError(t, err)

	require.NoError(t, p.MoveTo(part.RepairNeeded))
	assert.Equal(t, part.RepairNeeded, p.State())

	require.Error(t, p.MoveTo(part.Unknown))
	assert.Equal(t, part.RepairNeeded, p.State())
}

func TestPart_ConfirmDelivery(t *testing.T) {
	t.Run("only_while_packed", func(t *testing.T) {
		p, err := part.NewPart(kernel.NewUUID(), 1, newDescriptor(t), "")
		require.NoError(t, err)
		require.NoError(t, p.MoveTo(part.Painted))

		err = p.ConfirmDelivery()

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.False(t, p.IsReadyForDelivery())
	})

	t.Run("second_confirmation_is_rejected", func(t *testing.T) {
		p, err := part.NewPart(kernel.NewUUID(), 1, newDescriptor(t), "")
		require.NoError(t, err)
		require.NoError(t, p.MoveTo(part.Packed))

		require.NoError(t, p.ConfirmDelivery())
		assert.True(t, p.IsReadyForDelivery())

		err = p.ConfirmDelivery()
		require.ErrorIs(t, err, errs.ErrAlreadyConfirmed)
		assert.True(t, p.IsReadyForDelivery())
	})

	t.Run("confirmed_part_that_moved_on_stays_confirmed", func(t *testing.T) {
		p, err := part.RestorePart(kernel.NewUUID(), 1, newDescriptor(t), part.InTransitToSite, "", true, nil, "")
		require.NoError(t, err)

		require.ErrorIs(t, p.ConfirmDelivery(), errs.ErrAlreadyConfirmed)
	})
}

func TestPart_ReceptionAndPackingCode(t *testing.T) {
	p, err := part.NewPart(kernel.NewUUID(), 1, newDescriptor(t), "")
	require.NoError(t, err)

	require.ErrorIs(t, p.MarkReceived(time.Time{}), errs.ErrValueIsRequired)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.MarkReceived(at))
	assert.Equal(t, at, *p.ReceivedAt())

	require.ErrorIs(t, p.AttachPackingCode("  "), errs.ErrValueIsRequired)
	require.NoError(t, p.AttachPackingCode("codes/p.png"))
	assert.True(t, p.HasPackingCode())
}
