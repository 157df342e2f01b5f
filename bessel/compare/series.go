// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compare

import (
	"slices"
	"time"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ajroetker/go-j1c/bessel"
)

// Series is one variant at one precision over a grid.
type Series struct {
	Variant   Variant          `json:"variant"`
	Precision bessel.Precision `json:"precision"`
	Label     string           `json:"label"`
	// Values are the evaluated f(x), widened to float64.
	Values []float64 `json:"values"`
	// Errors are the clamped relative errors against the reference.
	Errors []float64 `json:"errors"`
	// Clipped are Values clipped to the reference's [min, max], for plotting
	// values rather than errors.
	Clipped []float64     `json:"clipped"`
	Stats   Stats         `json:"stats"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Stats aggregates a series' errors.
type Stats struct {
	Max    float64 `json:"max"`
	ArgMax float64 `json:"argmax"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P99    float64 `json:"p99"`
	// Saturated counts points whose error clamped to 1.
	Saturated int `json:"saturated"`
}

func newSeries(v Variant, p bessel.Precision, xs, ref, values []float64, elapsed time.Duration) (Series, error) {
	errs := make([]float64, len(xs))
	for i := range xs {
		e, err := RelativeError(ref[i], values[i])
		if err != nil {
			return Series{}, err
		}
		errs[i] = e
	}

	lower, upper := floats.Min(ref), floats.Max(ref)
	clipped := lo.Map(values, func(y float64, _ int) float64 {
		return lo.Clamp(y, lower, upper)
	})

	return Series{
		Variant:   v,
		Precision: p,
		Label:     Label(v, p),
		Values:    values,
		Errors:    errs,
		Clipped:   clipped,
		Stats:     summarize(xs, errs),
		Elapsed:   elapsed,
	}, nil
}

func summarize(xs, errs []float64) Stats {
	if len(errs) == 0 {
		return Stats{}
	}
	i := floats.MaxIdx(errs)
	sorted := slices.Clone(errs)
	slices.Sort(sorted)
	return Stats{
		Max:       errs[i],
		ArgMax:    xs[i],
		Mean:      stat.Mean(errs, nil),
		Median:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P99:       stat.Quantile(0.99, stat.Empirical, sorted, nil),
		Saturated: lo.CountBy(errs, func(e float64) bool { return e >= 1 }),
	}
}
