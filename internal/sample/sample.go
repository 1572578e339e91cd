// Package sample provides weighted categorical sampling on top of a shared
// faker's random stream.
package sample

import (
	"errors"

	"github.com/brianvoe/gofakeit/v7"
)

// ErrNonPositiveTotal is returned when the summed weights leave nothing to
// draw from. Weight tables in this repo are fixed and non-zero, so hitting
// this means a broken caller.
var ErrNonPositiveTotal = errors.New("total weight must be positive")

// Index draws one index with probability proportional to its weight, using a
// single uniform draw over the cumulative sum. Floating point accumulation
// error falls through to the last index.
func Index(f *gofakeit.Faker, weights []float64) (int, error) {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0, ErrNonPositiveTotal
	}

	u := f.Float64Range(0, total)
	var cum float64
	for i, w := range weights {
		cum += w
		if u < cum {
			return i, nil
		}
	}

	return len(weights) - 1, nil
}

// Pick draws one item proportional to weightOf(item).
func Pick[T any](f *gofakeit.Faker, items []T, weightOf func(T) float64) (T, error) {
	weights := make([]float64, len(items))
	for i, item := range items {
		weights[i] = weightOf(item)
	}

	idx, err := Index(f, weights)
	if err != nil {
		var zero T
		return zero, err
	}
	return items[idx], nil
}
