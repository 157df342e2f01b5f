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

package bessel

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy"

	"github.com/ajroetker/go-j1c/workerpool"
)

// MinParallelJ1cOps is the element count below which ParallelJ1c runs on the
// calling goroutine. Below it the pool hand-off costs more than the kernel.
const MinParallelJ1cOps = 16384

// ParallelJ1c is BaseJ1c split into contiguous spans across pool. Elements are
// independent, so the output is identical to a sequential BaseJ1c call.
//
// A nil pool, or fewer than MinParallelJ1cOps elements, runs sequentially.
func ParallelJ1c[T hwy.Floats](pool *workerpool.Pool, input, output []T) {
	size := min(len(input), len(output))
	if pool == nil || size < MinParallelJ1cOps {
		BaseJ1c(input[:size], output[:size])
		return
	}
	pool.ParallelFor(size, func(start, end int) {
		BaseJ1c(input[start:end], output[start:end])
	})
}

// Evaluate rounds xs to the width selected by p, evaluates f with BaseJ1c at
// that width and returns the results widened to float64. The input is not
// modified; the result is freshly allocated.
func Evaluate(xs []float64, p Precision) ([]float64, error) {
	return at(xs, p, BaseJ1c[float32], BaseJ1c[float64])
}

// EvaluateParallel is Evaluate using ParallelJ1c.
func EvaluateParallel(pool *workerpool.Pool, xs []float64, p Precision) ([]float64, error) {
	return at(xs, p,
		func(in, out []float32) { ParallelJ1c(pool, in, out) },
		func(in, out []float64) { ParallelJ1c(pool, in, out) },
	)
}

// EvaluateScalar is Evaluate using the per-element J1cSlice.
func EvaluateScalar(xs []float64, p Precision) ([]float64, error) {
	return at(xs, p, J1cSlice[float32], J1cSlice[float64])
}

// EvaluateTruncated is Evaluate using J1cTruncated with the given drop.
func EvaluateTruncated(xs []float64, p Precision, drop int) ([]float64, error) {
	if drop < 0 || drop > MaxTruncation {
		return nil, fmt.Errorf("bessel: truncation %d outside [0, %d]", drop, MaxTruncation)
	}
	return at(xs, p,
		func(in, out []float32) { J1cTruncated(in, out, drop) },
		func(in, out []float64) { J1cTruncated(in, out, drop) },
	)
}

// EvaluateDivided is Evaluate using J1cDividedSlice.
func EvaluateDivided(xs []float64, p Precision) ([]float64, error) {
	return at(xs, p, J1cDividedSlice[float32], J1cDividedSlice[float64])
}

// EvaluateDirect is Evaluate using the standard-library Direct form.
func EvaluateDirect(xs []float64, p Precision) ([]float64, error) {
	return at(xs, p, DirectSlice[float32], DirectSlice[float64])
}

func at(xs []float64, p Precision, narrow func(in, out []float32), wide func(in, out []float64)) ([]float64, error) {
	switch p {
	case Narrow:
		return widen(xs, narrow), nil
	case Wide:
		return widen(xs, wide), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPrecision, int(p))
}

func widen[T hwy.Floats](xs []float64, fn func(in, out []T)) []float64 {
	in := make([]T, len(xs))
	for i, x := range xs {
		in[i] = T(x)
	}
	out := make([]T, len(xs))
	fn(in, out)

	res := make([]float64, len(xs))
	for i, v := range out {
		res[i] = float64(v)
	}
	return res
}
