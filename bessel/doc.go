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

// Package bessel evaluates the normalized first-order Bessel ratio
//
//	f(x) = 2·J1(x)/x
//
// at float32 ("narrow") or float64 ("wide") precision. Form-factor models
// call it at every q·R sample of every fit iteration, so the kernel is a
// branch-selected closed form rather than a series:
//
//   - |x| < 8: a rational (Padé) approximation in y = x². The x of J1's
//     numerator cancels the 1/x of f, so the branch returns 2·P(y)/D(y).
//   - |x| >= 8: the amplitude-phase asymptotic form
//     sqrt(2/(π|x|))·(cos(χ)·P(y) − (8/|x|)·sin(χ)·Q(y)) with y = 64/x² and
//     χ = |x| − 3π/4, converted to f by sign(x)·2/x.
//
// f(0) is defined as the limit 1.
//
// # Precision
//
// Every coefficient and every intermediate is a value of the element type T.
// sqrt, sin and cos are evaluated once per call and rounded to T, so a
// float32 evaluation carries float32 rounding everywhere the algorithm does
// arithmetic. Multiply-add pairs are never contracted into FMA, which keeps
// the vector form (BaseJ1c) and the scalar form (J1c) bit-identical.
//
// # Accuracy
//
// Against a 500-bit reference over x in [1e-3, 1e5] the float64 kernel stays
// within 5e-8 of the envelope min(1, 2·sqrt(2/(πx))/x). Relative error is
// larger only near the zeros of J1, where f itself vanishes. float32 errors
// grow with x because the phase |x| − 3π/4 loses absolute precision; they
// reach about 1e-2 near x = 1e5. The package bessel/compare measures both.
//
// # Validation
//
// Nothing in this package validates its input. NaN propagates, ±Inf yields
// NaN. Use bessel/compare to validate grids and results offline.
package bessel
