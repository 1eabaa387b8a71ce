package services_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

func TestTransitionResolver_Resolve_DefaultPath(t *testing.T) {
	resolver := services.NewTransitionResolver(part.DefaultCatalog())

	path := []part.State{
		part.Created, part.InProduction, part.QualityCheck, part.WeldedFlapped,
		part.SurfacePrep, part.Painted, part.Packed, part.InTransitToSite, part.Installed,
	}
	for i := 0; i < len(path)-1; i++ {
		res, err := resolver.Resolve(path[i], start, start.Add(time.Hour))
		require.NoError(t, err, path[i].String())
		assert.Equal(t, path[i+1], res.Next, path[i].String())
	}
}

func TestTransitionResolver_Resolve_ReentryPoints(t *testing.T) {
	resolver := services.NewTransitionResolver(part.DefaultCatalog())

	res, err := resolver.Resolve(part.RepaintNeeded, start, start)
	require.NoError(t, err)
	assert.Equal(t, part.Painted, res.Next)

	res, err = resolver.Resolve(part.RepairNeeded, start, start)
	require.NoError(t, err)
	assert.Equal(t, part.QualityCheck, res.Next)
}

func TestTransitionResolver_Resolve_NoSuccessor(t *testing.T) {
	resolver := services.NewTransitionResolver(part.DefaultCatalog())

	for _, s := range []part.State{part.Installed, part.Missing, part.ReturnedOutOfSpec} {
		_, err := resolver.Resolve(s, start, start)
		require.ErrorIs(t, err, errs.ErrInvalidState, s.String())
	}
}

// The cure window is measured but never holds a painted part back.
func TestTransitionResolver_Resolve_PaintedAlwaysPacks(t *testing.T) {
	resolver := services.NewTransitionResolver(part.DefaultCatalog())

	cases := []struct {
		name    string
		elapsed time.Duration
		cured   bool
	}{
		{"immediately", 0, false},
		{"one_minute", time.Minute, false},
		{"just_short", services.CureWindow - time.Second, false},
		{"exactly_cured", services.CureWindow, true},
		{"two_days", 48 * time.Hour, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := resolver.Resolve(part.Painted, start, start.Add(tc.elapsed))

			require.NoError(t, err)
			assert.Equal(t, part.Packed, res.Next)
			assert.Equal(t, tc.cured, res.CureWindowElapsed)
		})
	}
}

func TestTransitionResolver_ResolveManual(t *testing.T) {
	resolver := services.NewTransitionResolver(part.DefaultCatalog())

	for _, s := range part.DefaultCatalog().AllStates() {
		got, err := resolver.ResolveManual(s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := resolver.ResolveManual(part.Unknown)
	require.Error(t, err)
}
