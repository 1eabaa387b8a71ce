package delivery_test

import (
	"testing"

	"shopfloor/internal/core/domain/model/delivery"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackedPart(t *testing.T, weight *float64) *part.Part {
	t.Helper()
	d, err := part.NewDescriptor("Bracket A", "S275", weight)
	require.NoError(t, err)
	p, err := part.RestorePart(kernel.NewUUID(), 42, d, part.Packed, "", false, nil, "")
	require.NoError(t, err)
	return p
}

func TestPackingCode_RoundTrip(t *testing.T) {
	w := 12.5
	p := newPackedPart(t, &w)

	code, err := delivery.NewPackingCode(p, "ACME North")
	require.NoError(t, err)

	payload := code.Encode()
	assert.Equal(t,
		"Part ID: "+p.ID().String()+"\nProject ID: 42\nCustomPart: Bracket A\nMaterial: S275\nWeight: 12.5\nClient: ACME North",
		payload)

	parsed, err := delivery.ParsePackingCode(payload)
	require.NoError(t, err)
	require.NoError(t, parsed.Validate())
	assert.True(t, p.ID().IsEqual(parsed.PartID()))
	assert.Equal(t, int64(42), parsed.ProjectID())
	assert.Equal(t, "Bracket A", parsed.PartTypeName())
	assert.Equal(t, "S275", parsed.MaterialName())
	assert.Equal(t, "ACME North", parsed.ClientAlias())
	require.NotNil(t, parsed.WeightKg())
	assert.InDelta(t, 12.5, *parsed.WeightKg(), 0)
	assert.Equal(t, p.ID().String()+"_packing_qr.png", parsed.FileName())
}

func TestPackingCode_NoWeight(t *testing.T) {
	p := newPackedPart(t, nil)

	code, err := delivery.NewPackingCode(p, "ACME\nNorth")
	require.NoError(t, err)
	assert.Contains(t, code.Encode(), "Weight: N/A")
	assert.Contains(t, code.Encode(), "Client: ACME North")

	parsed, err := delivery.ParsePackingCode(code.Encode())
	require.NoError(t, err)
	assert.Nil(t, parsed.WeightKg())
}

func TestParsePackingCode(t *testing.T) {
	id := kernel.NewUUID().String()

	t.Run("ignores_unknown_keys_and_crlf", func(t *testing.T) {
		c, err := delivery.ParsePackingCode("Part ID: " + id + "\r\nProject ID: 7\r\nPainter: Rosa\r\n")
		require.NoError(t, err)
		assert.Equal(t, int64(7), c.ProjectID())
		assert.Empty(t, c.ClientAlias())
	})

	cases := map[string]string{
		"empty":               "  ",
		"missing_part":        "Project ID: 7",
		"missing_project":     "Part ID: " + id,
		"bad_uuid":            "Part ID: nope\nProject ID: 7",
		"bad_project":         "Part ID: " + id + "\nProject ID: seven",
		"non_positive":        "Part ID: " + id + "\nProject ID: 0",
		"line_without_pair":   "Part ID: " + id + "\nProject ID: 7\ngarbage",
		"colon_without_space": "Part ID: " + id + "\nProject ID:7",
		"repeated_key":        "Part ID: " + id + "\nPart ID: " + id + "\nProject ID: 7",
		"bad_weight":          "Part ID: " + id + "\nProject ID: 7\nWeight: heavy",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := delivery.ParsePackingCode(payload)
			require.ErrorIs(t, err, errs.ErrInvalidPayload)
		})
	}
}
