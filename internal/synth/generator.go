// Package synth drives event synthesis: it picks a timestamp and archetype
// per event, builds the raw record, runs it through the rolling feature
// enricher in generation order, and returns the finished set sorted by
// timestamp.
package synth

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/omarhimada/loginsynth/internal/enrich"
	"github.com/omarhimada/loginsynth/internal/event"
	"github.com/omarhimada/loginsynth/internal/geo"
	"github.com/omarhimada/loginsynth/internal/registry"
)

// ErrInvalidRange is returned when the requested window ends before it starts.
var ErrInvalidRange = errors.New("end time must be after start time")

// Cumulative archetype thresholds on a single uniform draw per event.
const (
	thresholdNormal   = 0.82
	thresholdStuffing = 0.90
	thresholdSpray    = 0.96
)

// Generator owns the whole synthesis pipeline for one run. Not safe for
// concurrent use: the enricher's history maps and the shared faker are
// mutated on every event.
type Generator struct {
	faker    *gofakeit.Faker
	builder  *Builder
	enricher *enrich.Enricher
	logger   *zap.Logger
}

func NewGenerator(faker *gofakeit.Faker, reg *registry.Registry, catalog *geo.Catalog, logger *zap.Logger) *Generator {
	return &Generator{
		faker:    faker,
		builder:  NewBuilder(faker, reg, catalog),
		enricher: enrich.New(),
		logger:   logger,
	}
}

// Generate synthesizes ceil(days * eventsPerDay) events with uniformly
// random timestamps in [start, end).
//
// Events are enriched in the order they are generated, not in timestamp
// order: that mirrors a live scoring system observing events as they occur.
// Only the returned slice is sorted chronologically, for presentation.
func (g *Generator) Generate(start, end time.Time, eventsPerDay int) ([]event.LoginEvent, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: start=%s end=%s", ErrInvalidRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	span := end.Sub(start)
	total := int(math.Ceil(span.Hours() / 24 * float64(eventsPerDay)))
	if total < 0 {
		total = 0
	}

	g.logger.Info("generating login events",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("events_per_day", eventsPerDay),
		zap.Int("total", total),
	)

	out := make([]event.LoginEvent, 0, total)
	for i := 0; i < total; i++ {
		ts := start.Add(time.Duration(g.faker.Float64Range(0, float64(span))))
		raw := g.buildByArchetype(ts)
		out = append(out, g.enricher.Enrich(raw))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	g.logCounts(out)
	return out, nil
}

func (g *Generator) buildByArchetype(ts time.Time) event.LoginEvent {
	switch draw := g.faker.Float64Range(0, 1); {
	case draw < thresholdNormal:
		return g.builder.Normal(ts)
	case draw < thresholdStuffing:
		return g.builder.CredentialStuffing(ts)
	case draw < thresholdSpray:
		return g.builder.PasswordSpray(ts)
	default:
		return g.builder.AccountTakeover(ts)
	}
}

func (g *Generator) logCounts(events []event.LoginEvent) {
	counts := make(map[event.AttackType]int)
	for _, e := range events {
		counts[e.AttackType]++
	}
	g.logger.Info("generation finished",
		zap.Int("events", len(events)),
		zap.Int("normal", counts[event.AttackNone]),
		zap.Int("credential_stuffing", counts[event.AttackCredentialStuffing]),
		zap.Int("password_spray", counts[event.AttackPasswordSpray]),
		zap.Int("impossible_travel", counts[event.AttackImpossibleTravel]),
		zap.Int("mfa_fatigue", counts[event.AttackMFAFatigue]),
	)
}
