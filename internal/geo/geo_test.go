package geo_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"

	"github.com/omarhimada/loginsynth/internal/geo"
)

func TestHaversineKm_KnownDistance(t *testing.T) {
	// London to Paris is roughly 344 km great-circle.
	got := geo.HaversineKm(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, 344, got, 10)
}

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, geo.HaversineKm(52.52, 13.405, 52.52, 13.405), 0.001)
}

func TestWeightedRandom_BiasFavorsPreferredRegion(t *testing.T) {
	catalog := geo.NewCatalog(gofakeit.New(11))

	const draws = 2000
	biasedEU := 0
	for i := 0; i < draws; i++ {
		if catalog.WeightedRandom(true).Region == "EU" {
			biasedEU++
		}
	}

	// EU holds half the raw weight; with the 3.0/0.5 bias its share should
	// be well above that.
	assert.Greater(t, float64(biasedEU)/draws, 0.65)
}

func TestWeightedRandom_BiasDoesNotStick(t *testing.T) {
	catalog := geo.NewCatalog(gofakeit.New(11))

	// Interleave biased draws with unbiased ones; if the bias mutated the
	// stored weights the unbiased EU share would creep toward the biased one.
	const draws = 3000
	plainEU := 0
	for i := 0; i < draws; i++ {
		catalog.WeightedRandom(true)
		if catalog.WeightedRandom(false).Region == "EU" {
			plainEU++
		}
	}

	share := float64(plainEU) / draws
	assert.Greater(t, share, 0.40)
	assert.Less(t, share, 0.60)
}

func TestFarFrom_FallsBackWhenNothingQualifies(t *testing.T) {
	catalog := geo.NewCatalog(gofakeit.New(11))
	origin := catalog.WeightedRandom(false)

	// No two points on Earth are 20000 km apart; the catalog's deterministic
	// fallback (its last point) must come back instead of an error.
	got := catalog.FarFrom(origin, 20000)
	assert.Equal(t, "Sydney", got.City)
}

func TestFarFrom_RespectsMinimumDistance(t *testing.T) {
	catalog := geo.NewCatalog(gofakeit.New(11))
	origin := geo.GeoPoint{Country: "GB", Region: "EU", City: "London", Lat: 51.5074, Lon: -0.1278}

	for i := 0; i < 100; i++ {
		got := catalog.FarFrom(origin, 3000)
		dist := geo.HaversineKm(origin.Lat, origin.Lon, got.Lat, got.Lon)
		if got.City == "Sydney" {
			continue // fallback is allowed to be anything
		}
		assert.GreaterOrEqual(t, dist, 3000.0)
	}
}

func TestJitter_StaysNearAndKeepsLabels(t *testing.T) {
	catalog := geo.NewCatalog(gofakeit.New(11))
	base := geo.GeoPoint{Country: "PL", Region: "EU", City: "Warsaw", Lat: 52.2297, Lon: 21.0122}

	for i := 0; i < 100; i++ {
		got := catalog.Jitter(base)
		assert.Equal(t, base.Country, got.Country)
		assert.Equal(t, base.City, got.City)
		assert.InDelta(t, base.Lat, got.Lat, 0.5)
		assert.InDelta(t, base.Lon, got.Lon, 0.5)
	}

	// Jitter derives a new value; the base must be untouched.
	assert.Equal(t, 52.2297, base.Lat)
	assert.Equal(t, 21.0122, base.Lon)
}
