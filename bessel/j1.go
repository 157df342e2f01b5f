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

// J1 approximates the Bessel function of the first kind of order one from the
// same tables as J1c. Below BranchThreshold it is x·P(x²)/D(x²); above it is
// the asymptotic form with sign(x) applied last, so J1(-x) = -J1(x).
func J1[T hwy.Floats](x T) T {
	a := x
	if a < 0 {
		a = -a
	}
	if a < BranchThreshold {
		num, den := rationalTables[T]()
		y := T(x * x)
		n := T(x * horner(num[:], y))
		return n / horner(den[:], y)
	}

	pc, qc := asymptoticTables[T]()
	y := T(64) / T(a*a)
	p := horner(pc[:], y)
	q := horner(qc[:], y)
	sn, cn := sincos(a - T(phaseShift))

	rs := T(T(T(8)/a) * sn)
	bracket := T(cn*p) - T(rs*q)
	v := T(sqrt(T(twoOverPi)/a) * bracket)
	if x < 0 {
		return -v
	}
	return v
}

// J1cDivided computes 2·(J1(x)/x), dividing the J1 approximation by x after
// the fact. It exists to measure what that extra rounding costs against J1c,
// where the x cancels analytically. J1cDivided(0) = 1.
func J1cDivided[T hwy.Floats](x T) T {
	if x == 0 {
		return 1
	}
	return 2 * (J1(x) / x)
}

// J1cDividedSlice applies J1cDivided to each element of input.
func J1cDividedSlice[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	for i := range size {
		output[i] = J1cDivided(input[i])
	}
}
