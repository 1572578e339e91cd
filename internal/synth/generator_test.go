package synth_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/omarhimada/loginsynth/internal/event"
	"github.com/omarhimada/loginsynth/internal/geo"
	"github.com/omarhimada/loginsynth/internal/registry"
	"github.com/omarhimada/loginsynth/internal/synth"
)

func newTestGenerator(seed uint64) *synth.Generator {
	faker := gofakeit.New(seed)
	catalog := geo.NewCatalog(faker)
	reg := registry.Build(faker, catalog, registry.Options{MinUsersPerTenant: 10, MaxUsersPerTenant: 20})
	return synth.NewGenerator(faker, reg, catalog, zap.NewNop())
}

var (
	genStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	genEnd   = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
)

func TestGenerate_InvalidRange(t *testing.T) {
	g := newTestGenerator(5)

	_, err := g.Generate(
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		100,
	)
	assert.ErrorIs(t, err, synth.ErrInvalidRange)

	_, err = g.Generate(genStart, genStart, 100)
	assert.ErrorIs(t, err, synth.ErrInvalidRange)
}

func TestGenerate_ZeroRateYieldsEmptySet(t *testing.T) {
	g := newTestGenerator(5)

	events, err := g.Generate(genStart, genStart.AddDate(0, 0, 1), 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestGenerate_CountAndWindow(t *testing.T) {
	g := newTestGenerator(5)

	events, err := g.Generate(genStart, genEnd, 250)
	require.NoError(t, err)
	assert.Len(t, events, 500)

	for _, e := range events {
		assert.False(t, e.Timestamp.Before(genStart))
		assert.False(t, e.Timestamp.After(genEnd))
	}
}

func TestGenerate_SortedByTimestamp(t *testing.T) {
	g := newTestGenerator(5)

	events, err := g.Generate(genStart, genEnd, 300)
	require.NoError(t, err)

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Timestamp.Before(events[i-1].Timestamp),
			"events must be sorted non-decreasing by timestamp")
	}
}

func TestGenerate_FieldInvariants(t *testing.T) {
	g := newTestGenerator(5)

	events, err := g.Generate(genStart, genEnd, 500)
	require.NoError(t, err)

	seenUser := make(map[string]bool)
	for _, e := range events {
		assert.GreaterOrEqual(t, e.RiskScore, 0)
		assert.LessOrEqual(t, e.RiskScore, 100)
		assert.GreaterOrEqual(t, e.IPReputation, 0)
		assert.LessOrEqual(t, e.IPReputation, 100)
		assert.NotEmpty(t, e.TenantID)
		assert.NotEmpty(t, e.AttackType)
		seenUser[e.UserID] = true
	}
	assert.Greater(t, len(seenUser), 1)
}

func TestGenerate_ArchetypeMixIsPlausible(t *testing.T) {
	g := newTestGenerator(5)

	events, err := g.Generate(genStart, genEnd, 2000)
	require.NoError(t, err)

	counts := make(map[event.AttackType]int)
	for _, e := range events {
		counts[e.AttackType]++
	}

	total := float64(len(events))
	assert.InDelta(t, 0.82, float64(counts[event.AttackNone])/total, 0.05)
	assert.InDelta(t, 0.08, float64(counts[event.AttackCredentialStuffing])/total, 0.03)
	assert.InDelta(t, 0.06, float64(counts[event.AttackPasswordSpray])/total, 0.03)

	takeover := counts[event.AttackImpossibleTravel] + counts[event.AttackMFAFatigue]
	assert.InDelta(t, 0.04, float64(takeover)/total, 0.03)
}

func TestGenerate_RunsAreReproducible(t *testing.T) {
	a, err := newTestGenerator(9).Generate(genStart, genEnd, 200)
	require.NoError(t, err)
	b, err := newTestGenerator(9).Generate(genStart, genEnd, 200)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
