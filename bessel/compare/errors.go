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

	"github.com/ajroetker/go-j1c/bessel"
)

// ErrNonFinite reports a NaN or infinite value where a finite one is needed.
var ErrNonFinite = errors.New("compare: non-finite value")

// NonFiniteError locates a non-finite evaluation result. It wraps
// ErrNonFinite.
type NonFiniteError struct {
	Variant   Variant
	Precision bessel.Precision
	Index     int
	X         float64
	Value     float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("compare: %s %s produced %v at x[%d]=%v", e.Variant, e.Precision, e.Value, e.Index, e.X)
}

func (e *NonFiniteError) Unwrap() error { return ErrNonFinite }

// RelativeError returns |ref − approx|/|ref| clamped to [0, 1].
//
// A zero reference gives 0 when approx is also zero and 1 otherwise. NaN or
// infinite arguments are an error, never clamped into range.
func RelativeError(ref, approx float64) (float64, error) {
	if !finite(ref) || !finite(approx) {
		return 0, fmt.Errorf("%w: ref=%v approx=%v", ErrNonFinite, ref, approx)
	}
	if ref == 0 {
		if approx == 0 {
			return 0, nil
		}
		return 1, nil
	}
	return min(math.Abs((ref-approx)/ref), 1), nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// checkFinite returns a *NonFiniteError for the first non-finite value.
func checkFinite(v Variant, p bessel.Precision, xs, values []float64) error {
	for i, y := range values {
		if !finite(y) {
			return &NonFiniteError{Variant: v, Precision: p, Index: i, X: xs[i], Value: y}
		}
	}
	return nil
}
