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

// BaseJ1c computes f(x) = 2·J1(x)/x for each element of input.
//
// Each vector of lanes is pushed through both branches and the results are
// merged with the |x| < 8 mask, so the loop body has no data-dependent
// branches. Lanes outside a branch's domain may produce Inf or NaN in that
// branch; the merge discards them. Tail elements that do not fill a vector
// go through J1c, which performs the same operations in the same order.
//
// Output values are bit-identical to J1c for every input, and exactly 1
// where the input is ±0.
func BaseJ1c[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	if size == 0 {
		return
	}

	num, den := rationalTables[T]()
	pc, qc := asymptoticTables[T]()
	vNum := broadcast(num[:])
	vDen := broadcast(den[:])
	vP := broadcast(pc[:])
	vQ := broadcast(qc[:])

	vZero := hwy.Zero[T]()
	vOne := hwy.Set(T(1))
	vTwo := hwy.Set(T(2))
	vEight := hwy.Set(T(8))
	v64 := hwy.Set(T(64))
	vThreshold := hwy.Set(T(BranchThreshold))
	vPhase := hwy.Set(T(phaseShift))
	vTwoOverPi := hwy.Set(T(twoOverPi))

	lanes := vOne.NumLanes()
	ii := 0

	for ; ii+lanes <= size; ii += lanes {
		x := hwy.Load(input[ii:])
		a := hwy.Abs(x)

		// Branch A: 2·P(y)/D(y), y = x².
		y := hwy.Mul(x, x)
		fa := hwy.Div(hwy.Mul(vTwo, hornerVec(vNum, y)), hornerVec(vDen, y))

		// Branch B: sign(x)·amp·(cos·P − (8/a)·sin·Q)·2/x.
		yb := hwy.Div(v64, hwy.Mul(a, a))
		xx := hwy.Sub(a, vPhase)
		p := hornerVec(vP, yb)
		q := hornerVec(vQ, yb)
		sn, cn := sinCosVec(xx)

		amp := hwy.Sqrt(hwy.Div(vTwoOverPi, a))
		amp = hwy.IfThenElse(hwy.LessThan(x, vZero), hwy.Neg(amp), amp)
		rs := hwy.Mul(hwy.Div(vEight, a), sn)
		bracket := hwy.Sub(hwy.Mul(cn, p), hwy.Mul(rs, q))
		fb := hwy.Div(hwy.Mul(hwy.Mul(amp, bracket), vTwo), x)

		f := hwy.IfThenElse(hwy.LessThan(a, vThreshold), fa, fb)
		f = hwy.IfThenElse(hwy.Equal(x, vZero), vOne, f)

		hwy.Store(f, output[ii:])
	}

	for i := ii; i < size; i++ {
		output[i] = J1c(input[i])
	}
}

// broadcast returns one constant vector per coefficient.
func broadcast[T hwy.Floats](c []T) []hwy.Vec[T] {
	v := make([]hwy.Vec[T], len(c))
	for i, ci := range c {
		v[i] = hwy.Set(ci)
	}
	return v
}

// hornerVec is horner over vectors; coefficients lowest power first.
func hornerVec[T hwy.Floats](c []hwy.Vec[T], y hwy.Vec[T]) hwy.Vec[T] {
	n := len(c)
	p := c[n-1]
	for i := n - 2; i >= 0; i-- {
		p = hwy.Add(hwy.Mul(p, y), c[i])
	}
	return p
}

// sinCosVec applies sincos lane by lane.
func sinCosVec[T hwy.Floats](v hwy.Vec[T]) (sin, cos hwy.Vec[T]) {
	data := v.Data()
	sinData := make([]T, len(data))
	cosData := make([]T, len(data))
	for i, x := range data {
		sinData[i], cosData[i] = sincos(x)
	}
	return hwy.Load(sinData), hwy.Load(cosData)
}
