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
	stdmath "math"

	"github.com/ajroetker/go-highway/hwy"
)

// J1c computes f(x) = 2·J1(x)/x for a single value, entirely in T.
//
// This is the per-element form of BaseJ1c and returns bit-identical results.
// J1c(0) = 1 and J1c(-x) == J1c(x) for every x.
func J1c[T hwy.Floats](x T) T {
	return j1cTruncated(x, 0)
}

// J1cSlice applies J1c to each element of input, one element at a time.
func J1cSlice[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	for i := range size {
		output[i] = J1c(input[i])
	}
}

// J1cTruncated evaluates f with the drop highest-order terms removed from all
// four polynomials, for measuring how much each term contributes. drop = 0 is
// identical to J1cSlice. It panics unless 0 <= drop <= MaxTruncation.
func J1cTruncated[T hwy.Floats](input, output []T, drop int) {
	if drop < 0 || drop > MaxTruncation {
		panic(fmt.Sprintf("bessel: truncation %d outside [0, %d]", drop, MaxTruncation))
	}
	size := min(len(input), len(output))
	for i := range size {
		output[i] = j1cTruncated(input[i], drop)
	}
}

func j1cTruncated[T hwy.Floats](x T, drop int) T {
	if x == 0 {
		return 1
	}
	a := x
	if a < 0 {
		a = -a
	}
	if a < BranchThreshold {
		num, den := rationalTables[T]()
		y := T(x * x)
		p := horner(num[:len(num)-drop], y)
		d := horner(den[:len(den)-drop], y)
		return T(2*p) / d
	}

	pc, qc := asymptoticTables[T]()
	y := T(64) / T(a*a)
	xx := a - T(phaseShift)
	p := horner(pc[:len(pc)-drop], y)
	q := horner(qc[:len(qc)-drop], y)
	sn, cn := sincos(xx)

	amp := sqrt(T(twoOverPi) / a)
	if x < 0 {
		amp = -amp
	}
	r := T(8) / a
	rs := T(r * sn)
	bracket := T(cn*p) - T(rs*q)
	v := T(amp * bracket)
	v = T(v * 2)
	return v / x
}

// horner evaluates c[0] + y·(c[1] + y·(...)) starting from the last
// coefficient. The T conversion on each product keeps the compiler from
// fusing it with the following add.
func horner[T hwy.Floats](c []T, y T) T {
	n := len(c)
	p := c[n-1]
	for i := n - 2; i >= 0; i-- {
		p = T(p*y) + c[i]
	}
	return p
}

// sincos returns sin(x) and cos(x) rounded to T. float32 goes through the
// float64 routines, like the go-highway scalar helpers.
func sincos[T hwy.Floats](x T) (sin, cos T) {
	s, c := stdmath.Sincos(float64(x))
	return T(s), T(c)
}

func sqrt[T hwy.Floats](x T) T {
	return T(stdmath.Sqrt(float64(x)))
}
