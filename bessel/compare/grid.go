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
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidGrid reports grid bounds or values that cannot be sampled.
var ErrInvalidGrid = errors.New("compare: invalid grid")

// Spacing says how a Grid's abscissas were laid out.
type Spacing string

const (
	Log      Spacing = "log"
	Linear   Spacing = "linear"
	Explicit Spacing = "explicit"
)

// Default sampling ranges.
const (
	DefaultLogMin    = 1e-3
	DefaultLogMax    = 1e5
	DefaultLogPoints = 400

	DefaultLinearMin    = 1.0
	DefaultLinearMax    = 1000.0
	DefaultLinearPoints = 2000
)

// Grid is an immutable, ordered set of abscissas.
type Grid struct {
	xs      []float64
	spacing Spacing
}

// LogGrid returns n points evenly spaced in log10 between lo and hi inclusive.
func LogGrid(lo, hi float64, n int) (Grid, error) {
	if err := checkBounds(lo, hi, n); err != nil {
		return Grid{}, err
	}
	if lo <= 0 {
		return Grid{}, fmt.Errorf("%w: log grid needs 0 < lo, got lo=%v", ErrInvalidGrid, lo)
	}
	xs := floats.LogSpan(make([]float64, n), lo, hi)
	// Pin the endpoints exactly; LogSpan goes through exp(log(x)).
	xs[0], xs[n-1] = lo, hi
	return Grid{xs: xs, spacing: Log}, nil
}

// LinearGrid returns n points evenly spaced between lo and hi inclusive.
func LinearGrid(lo, hi float64, n int) (Grid, error) {
	if err := checkBounds(lo, hi, n); err != nil {
		return Grid{}, err
	}
	return Grid{xs: floats.Span(make([]float64, n), lo, hi), spacing: Linear}, nil
}

// NewGrid copies xs into a Grid. The values must be finite; order is kept.
func NewGrid(xs []float64) (Grid, error) {
	if len(xs) == 0 {
		return Grid{}, fmt.Errorf("%w: no points", ErrInvalidGrid)
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Grid{}, fmt.Errorf("%w: xs[%d] = %v", ErrInvalidGrid, i, x)
		}
	}
	return Grid{xs: slices.Clone(xs), spacing: Explicit}, nil
}

// DefaultLogGrid is 400 points from 1e-3 to 1e5.
func DefaultLogGrid() Grid {
	g, _ := LogGrid(DefaultLogMin, DefaultLogMax, DefaultLogPoints)
	return g
}

// DefaultLinearGrid is 2000 points from 1 to 1000.
func DefaultLinearGrid() Grid {
	g, _ := LinearGrid(DefaultLinearMin, DefaultLinearMax, DefaultLinearPoints)
	return g
}

func checkBounds(lo, hi float64, n int) error {
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0):
		return fmt.Errorf("%w: bounds [%v, %v] not finite", ErrInvalidGrid, lo, hi)
	case lo >= hi:
		return fmt.Errorf("%w: need lo < hi, got [%v, %v]", ErrInvalidGrid, lo, hi)
	case n < 2:
		return fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidGrid, n)
	}
	return nil
}

// Len returns the number of points.
func (g Grid) Len() int { return len(g.xs) }

// At returns the i-th abscissa.
func (g Grid) At(i int) float64 { return g.xs[i] }

// Values returns a copy of the abscissas.
func (g Grid) Values() []float64 { return slices.Clone(g.xs) }

// Spacing reports how the grid was built.
func (g Grid) Spacing() Spacing { return g.spacing }

func (g Grid) String() string {
	if len(g.xs) == 0 {
		return "empty grid"
	}
	return fmt.Sprintf("%s grid, %d points in [%g, %g]", g.spacing, len(g.xs), floats.Min(g.xs), floats.Max(g.xs))
}
