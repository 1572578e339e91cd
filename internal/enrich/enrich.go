// Package enrich computes the rolling behavioral features for each event as
// if the stream were being scored live: every feature is derived only from
// events the enricher has already observed, in the order they were produced.
package enrich

import (
	"math"
	"strings"
	"time"

	"github.com/omarhimada/loginsynth/internal/event"
	"github.com/omarhimada/loginsynth/internal/geo"
)

const (
	userRetention   = 24 * time.Hour
	sourceRetention = 10 * time.Minute

	shortWindow = 5 * time.Minute
	midWindow   = 10 * time.Minute

	// Failures inside the 10-minute window needed before a success is
	// flagged as success-after-failures.
	failureStreak = 5
)

// Enricher keeps one history window per user and one per source address.
// A single Enricher instance is not safe for concurrent use: both window
// maps are mutated in place on every event.
type Enricher struct {
	byUser   map[string]*window
	bySource map[string]*window
}

func New() *Enricher {
	return &Enricher{
		byUser:   make(map[string]*window),
		bySource: make(map[string]*window),
	}
}

// Enrich returns a copy of e with the seven rolling features filled in from
// prior history, then records the enriched event into both windows. The
// current event never sees itself.
func (en *Enricher) Enrich(e event.LoginEvent) event.LoginEvent {
	t := e.Timestamp
	userWin := en.window(en.byUser, e.UserID)
	sourceWin := en.window(en.bySource, sourceKey(e.SourceIP))

	// The user window only ever needs the 24h horizon; the source window
	// only ever needs 10m.
	userWin.pruneBefore(t.Add(-userRetention))
	sourceWin.pruneBefore(t.Add(-sourceRetention))

	shortCutoff := t.Add(-shortWindow)
	midCutoff := t.Add(-midWindow)

	failed5m := 0
	failed10m := 0
	sources10m := make(map[string]struct{})
	countries24h := make(map[string]struct{})
	for _, prior := range userWin.all() {
		countries24h[prior.Country] = struct{}{}
		if !prior.Timestamp.Before(midCutoff) {
			sources10m[sourceKey(prior.SourceIP)] = struct{}{}
			if prior.Outcome == event.OutcomeFail {
				failed10m++
				if !prior.Timestamp.Before(shortCutoff) {
					failed5m++
				}
			}
		}
	}

	usernames := make(map[string]struct{})
	for _, prior := range sourceWin.all() {
		usernames[prior.Username] = struct{}{}
	}

	e.FailedAttempts5m = failed5m
	e.UniqueSources10m = len(sources10m)
	e.UniqueCountries24h = len(countries24h)
	e.DistinctUsernamesFromSource10m = len(usernames)
	e.SuccessAfterFailures = e.Outcome == event.OutcomeSuccess && failed10m >= failureStreak

	if prev, ok := userWin.last(); ok {
		e.MinutesSinceLastLogin = int(math.Round(t.Sub(prev.Timestamp).Minutes()))
		e.DistanceKmFromLastLogin = int(math.Round(geo.HaversineKm(prev.Lat, prev.Lon, e.Lat, e.Lon)))
	} else {
		e.MinutesSinceLastLogin = -1
		e.DistanceKmFromLastLogin = 0
	}

	userWin.append(e)
	sourceWin.append(e)

	return e
}

func (en *Enricher) window(m map[string]*window, key string) *window {
	w, ok := m[key]
	if !ok {
		w = &window{}
		m[key] = w
	}
	return w
}

// Source addresses compare case-insensitively (IPv6 literals).
func sourceKey(ip string) string {
	return strings.ToLower(ip)
}
