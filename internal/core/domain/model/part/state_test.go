package part_test

import (
	"encoding/json"
	"testing"

	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	t.Run("round_trips_every_catalog_state", func(t *testing.T) {
		for _, s := range part.DefaultCatalog().AllStates() {
			parsed, err := part.ParseState(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("ignores_case_and_blanks", func(t *testing.T) {
		parsed, err := part.ParseState("  repair_needed ")
		require.NoError(t, err)
		assert.Equal(t, part.RepairNeeded, parsed)
	})

	t.Run("rejects_unknown_names", func(t *testing.T) {
		_, err := part.ParseState("GILDED")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestState_Validate(t *testing.T) {
	require.NoError(t, part.Packed.Validate())
	require.Error(t, part.Unknown.Validate())
	require.Error(t, part.State(99).Validate())
	assert.Equal(t, "UNKNOWN", part.State(99).String())
	assert.Equal(t, "Unknown", part.Unknown.Label())
	assert.Equal(t, "In transit to site", part.InTransitToSite.Label())
}

func TestState_JSON(t *testing.T) {
	type envelope struct {
		Target part.State `json:"target"`
	}

	raw, err := json.Marshal(envelope{Target: part.WeldedFlapped})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"WELDED_FLAPPED"}`, string(raw))

	var decoded envelope
	require.NoError(t, json.Unmarshal([]byte(`{"target":"missing"}`), &decoded))
	assert.Equal(t, part.Missing, decoded.Target)

	require.Error(t, json.Unmarshal([]byte(`{"target":"nope"}`), &decoded))
}
