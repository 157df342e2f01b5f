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

import "github.com/ajroetker/go-highway/hwy"

// BranchThreshold separates the rational branch (|x| < BranchThreshold) from
// the asymptotic branch. Neither formula is accurate on the other side; the
// jump at the boundary is a few 1e-9 in float64.
const BranchThreshold = 8.0

// Asymptotic branch constants.
const (
	// phaseShift is 3π/4, the order-1 phase offset.
	phaseShift = 2.356194491
	// twoOverPi is 2/π in the amplitude sqrt(2/(π·a)).
	twoOverPi = 0.636619772
)

// MaxTruncation is the largest number of high-order terms J1cTruncated may
// drop; the asymptotic polynomials have five terms and must keep one.
const MaxTruncation = 4

// rationalTables returns the coefficients of P(y) and D(y), lowest power
// first, for the branch |x| < 8 where J1(x) ≈ x·P(y)/D(y), y = x².
func rationalTables[T hwy.Floats]() (num, den [6]T) {
	num = [6]T{
		72362614232.0,
		-7895059235.0,
		242396853.1,
		-2972611.439,
		15704.48260,
		-30.16036606,
	}
	den = [6]T{
		144725228442.0,
		2300535178.0,
		18583304.74,
		99447.43394,
		376.9991397,
		1.0,
	}
	return num, den
}

// asymptoticTables returns the coefficients of P(y) and Q(y), lowest power
// first, for the branch |x| >= 8, y = 64/x².
func asymptoticTables[T hwy.Floats]() (p, q [5]T) {
	p = [5]T{
		1.0,
		0.183105e-2,
		-0.3516396496e-4,
		0.2457520174e-5,
		-0.240337019e-6,
	}
	q = [5]T{
		0.04687499995,
		-0.2002690873e-3,
		0.8449199096e-5,
		-0.88228987e-6,
		0.105787412e-6,
	}
	return p, q
}
