// Package geo owns the fixed catalog of geographic points that login traffic
// is sampled from. Points are value types; the catalog never hands out a
// mutable reference to its own data.
package geo

import (
	"math"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/omarhimada/loginsynth/internal/sample"
)

const (
	earthRadiusKm = 6371

	// Region bias applied by WeightedRandom when requested. The boost/penalty
	// pair is applied to a copy of the weights, never the stored table.
	preferredRegion = "EU"
	regionBoost     = 3.0
	regionPenalty   = 0.5

	// FarFrom gives up after this many uniform draws and falls back to the
	// last catalog point.
	farFromRetries = 25
)

// GeoPoint is an immutable catalog location.
type GeoPoint struct {
	Country string
	Region  string
	City    string
	Lat     float64
	Lon     float64
}

type Catalog struct {
	faker   *gofakeit.Faker
	points  []GeoPoint
	weights []float64
}

func NewCatalog(faker *gofakeit.Faker) *Catalog {
	return &Catalog{
		faker: faker,
		points: []GeoPoint{
			{Country: "GB", Region: "EU", City: "London", Lat: 51.5074, Lon: -0.1278},
			{Country: "FR", Region: "EU", City: "Paris", Lat: 48.8566, Lon: 2.3522},
			{Country: "DE", Region: "EU", City: "Berlin", Lat: 52.5200, Lon: 13.4050},
			{Country: "PL", Region: "EU", City: "Warsaw", Lat: 52.2297, Lon: 21.0122},
			{Country: "ES", Region: "EU", City: "Madrid", Lat: 40.4168, Lon: -3.7038},
			{Country: "NL", Region: "EU", City: "Amsterdam", Lat: 52.3676, Lon: 4.9041},
			{Country: "US", Region: "NA", City: "New York", Lat: 40.7128, Lon: -74.0060},
			{Country: "US", Region: "NA", City: "Chicago", Lat: 41.8781, Lon: -87.6298},
			{Country: "CA", Region: "NA", City: "Toronto", Lat: 43.6532, Lon: -79.3832},
			{Country: "BR", Region: "SA", City: "Sao Paulo", Lat: -23.5505, Lon: -46.6333},
			{Country: "CO", Region: "SA", City: "Bogota", Lat: 4.7110, Lon: -74.0721},
			{Country: "SG", Region: "AS", City: "Singapore", Lat: 1.3521, Lon: 103.8198},
			{Country: "JP", Region: "AS", City: "Tokyo", Lat: 35.6762, Lon: 139.6503},
			{Country: "IN", Region: "AS", City: "Mumbai", Lat: 19.0760, Lon: 72.8777},
			{Country: "NG", Region: "AF", City: "Lagos", Lat: 6.5244, Lon: 3.3792},
			{Country: "AU", Region: "OC", City: "Sydney", Lat: -33.8688, Lon: 151.2093},
		},
		weights: []float64{10, 8, 8, 6, 5, 5, 9, 6, 5, 4, 2, 4, 4, 3, 2, 3},
	}
}

// WeightedRandom draws one catalog point proportional to its weight. With
// preferRegionBias the preferred region's weights are boosted and everyone
// else's penalized for this draw only.
func (c *Catalog) WeightedRandom(preferRegionBias bool) GeoPoint {
	weights := c.weights
	if preferRegionBias {
		weights = make([]float64, len(c.weights))
		for i, w := range c.weights {
			if c.points[i].Region == preferredRegion {
				weights[i] = w * regionBoost
			} else {
				weights[i] = w * regionPenalty
			}
		}
	}

	idx, err := sample.Index(c.faker, weights)
	if err != nil {
		// The weight table is fixed and non-zero; reaching this is a bug.
		panic("geo: catalog weights sum to zero")
	}
	return c.points[idx]
}

// FarFrom samples uniformly until it finds a point at least minKm away from
// origin. When the retry budget runs out it settles for the last catalog
// point rather than failing; callers want "somewhere implausible", not an
// exact distance.
func (c *Catalog) FarFrom(origin GeoPoint, minKm float64) GeoPoint {
	for i := 0; i < farFromRetries; i++ {
		candidate := c.points[c.faker.Number(0, len(c.points)-1)]
		if HaversineKm(origin.Lat, origin.Lon, candidate.Lat, candidate.Lon) >= minKm {
			return candidate
		}
	}
	return c.points[len(c.points)-1]
}

// Jitter returns a copy of p nudged by up to half a degree in each axis, so
// repeated logins from one home base don't share exact coordinates.
func (c *Catalog) Jitter(p GeoPoint) GeoPoint {
	return GeoPoint{
		Country: p.Country,
		Region:  p.Region,
		City:    p.City,
		Lat:     p.Lat + c.faker.Float64Range(-0.5, 0.5),
		Lon:     p.Lon + c.faker.Float64Range(-0.5, 0.5),
	}
}

// HaversineKm is the great-circle distance between two coordinates on a mean
// Earth radius of 6371 km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
