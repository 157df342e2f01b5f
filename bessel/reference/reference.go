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

// Package reference evaluates f(x) = 2·J1(x)/x at arbitrary precision.
//
// It is the ground truth the comparison harness measures the fixed-precision
// kernels against. Small arguments use the power series
//
//	f(x) = Σ (-1)^k (x/2)^(2k) / (k!·(k+1)!)
//
// at a working precision widened by the bits the alternating sum cancels.
// Large arguments use Hankel's asymptotic expansion, truncated at its
// smallest term, which is below the working precision once
// |x| ≥ w·ln2/2 + 8. The phase |x| − 3π/4 is reduced modulo 2π before sin and
// cos are taken.
//
// The evaluator never falls back to an approximation: if a series fails to
// converge it returns ErrNoConvergence.
package reference

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sync"

	"github.com/tuneinsight/lattigo/v5/utils/bignum"

	"github.com/ajroetker/go-j1c/workerpool"
)

const (
	// DefaultBits is the precision used when bits is 0.
	DefaultBits uint = 500

	// MinBits is the smallest working precision. Requests for fewer bits are
	// computed at MinBits and then rounded.
	MinBits uint = 64

	guardBits uint = 32
	maxTerms       = 1 << 16
)

var (
	// ErrNoConvergence reports that a series neither reached the working
	// precision nor stayed convergent within its term budget.
	ErrNoConvergence = errors.New("reference: series did not converge")

	// ErrNonFiniteInput reports a NaN or infinite abscissa.
	ErrNonFiniteInput = errors.New("reference: non-finite input")
)

// J1c returns 2·J1(x)/x rounded to bits of mantissa (DefaultBits when bits is
// 0). J1c(0) is exactly 1 and J1c(-x) equals J1c(x).
func J1c(x float64, bits uint) (*big.Float, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil, fmt.Errorf("%w: %v", ErrNonFiniteInput, x)
	}
	if bits == 0 {
		bits = DefaultBits
	}
	if x == 0 {
		return bignum.NewFloat(1, bits), nil
	}

	w := max(bits, MinBits) + guardBits
	a := math.Abs(x)

	var (
		f   *big.Float
		err error
	)
	if a < seriesLimit(w) {
		f, err = series(a, w)
	} else {
		f, err = hankel(a, w)
	}
	if err != nil {
		return nil, fmt.Errorf("x=%v at %d bits: %w", x, bits, err)
	}
	return new(big.Float).SetPrec(bits).Set(f), nil
}

// Evaluate returns J1c of every element of xs rounded to float64. It stops at
// the first error.
func Evaluate(xs []float64, bits uint) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		f, err := J1c(x, bits)
		if err != nil {
			return nil, err
		}
		out[i], _ = f.Float64()
	}
	return out, nil
}

// EvaluateParallel is Evaluate spread over pool. Points are claimed one at a
// time because the cost per point grows with |x|. If several points fail, the
// error of the lowest index is returned.
func EvaluateParallel(pool *workerpool.Pool, xs []float64, bits uint) ([]float64, error) {
	out := make([]float64, len(xs))
	errs := make([]error, len(xs))
	pool.ParallelForAtomic(len(xs), func(i int) {
		f, err := J1c(xs[i], bits)
		if err != nil {
			errs[i] = err
			return
		}
		out[i], _ = f.Float64()
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// seriesLimit is the |x| below which the power series is used at working
// precision w. Above it the smallest Hankel term is below 2^-w.
func seriesLimit(w uint) float64 {
	return float64(w)*math.Ln2/2 + 8
}

func series(a float64, w uint) (*big.Float, error) {
	// Terms peak near e^a, so the sum loses about a·log2(e) bits.
	prec := w + uint(math.Ceil(a*math.Log2E)) + 64
	tol := -int(w) - 8

	half := bignum.NewFloat(a/2, prec)
	z := new(big.Float).SetPrec(prec).Mul(half, half)
	z.Neg(z)

	term := bignum.NewFloat(1, prec)
	sum := bignum.NewFloat(1, prec)
	den := new(big.Float).SetPrec(prec)
	for k := 1; k <= maxTerms; k++ {
		term.Mul(term, z)
		den.SetInt64(int64(k) * int64(k+1))
		term.Quo(term, den)
		sum.Add(sum, term)
		if float64(k) > a/2 && negligible(term, tol) {
			return sum, nil
		}
	}
	return nil, fmt.Errorf("%w: power series exceeded %d terms", ErrNoConvergence, maxTerms)
}

func hankel(a float64, w uint) (*big.Float, error) {
	// The phase reduction needs the integer bits of a on top of w.
	_, exp := math.Frexp(a)
	prec := w + uint(max(exp, 0)) + 16
	tol := -int(w) - 8

	z := bignum.NewFloat(a, prec)
	eightZ := new(big.Float).SetPrec(prec).Mul(z, bignum.NewFloat(8, prec))

	// t_k = t_{k-1}·(4 − (2k−1)²)/(8kz); P takes the even terms and Q the odd
	// ones, each with alternating sign.
	p := bignum.NewFloat(1, prec)
	q := bignum.NewFloat(0, prec)
	term := bignum.NewFloat(1, prec)
	factor := new(big.Float).SetPrec(prec)
	prevExp := term.MantExp(nil)
	for k := 1; k <= maxTerms; k++ {
		odd := int64(2*k - 1)
		factor.SetInt64(4 - odd*odd)
		term.Mul(term, factor)
		factor.SetInt64(int64(k))
		term.Quo(term, factor)
		term.Quo(term, eightZ)

		switch k % 4 {
		case 0:
			p.Add(p, term)
		case 1:
			q.Add(q, term)
		case 2:
			p.Sub(p, term)
		case 3:
			q.Sub(q, term)
		}

		if negligible(term, tol) {
			return combine(z, p, q, prec), nil
		}
		e := term.MantExp(nil)
		if e > prevExp {
			return nil, fmt.Errorf("%w: asymptotic expansion diverges at term %d", ErrNoConvergence, k)
		}
		prevExp = e
	}
	return nil, fmt.Errorf("%w: asymptotic expansion exceeded %d terms", ErrNoConvergence, maxTerms)
}

// combine returns 2·J1(z)/z with J1(z) = sqrt(2/(πz))·(P·cos χ − Q·sin χ).
func combine(z, p, q *big.Float, prec uint) *big.Float {
	pi := cachedPi(prec)
	chi := phase(z, pi, prec)
	sin := bignum.Sin(chi)
	cos := bignum.Cos(chi)

	j := new(big.Float).SetPrec(prec).Mul(p, cos)
	j.Sub(j, new(big.Float).SetPrec(prec).Mul(q, sin))

	amp := new(big.Float).SetPrec(prec).Mul(pi, z)
	amp.Quo(bignum.NewFloat(2, prec), amp)
	amp.Sqrt(amp)
	j.Mul(j, amp)

	j.Mul(j, bignum.NewFloat(2, prec))
	return j.Quo(j, z)
}

// phase returns z − 3π/4 reduced to [−π, π].
func phase(z, pi *big.Float, prec uint) *big.Float {
	chi := new(big.Float).SetPrec(prec).Mul(pi, bignum.NewFloat(0.75, prec))
	chi.Sub(z, chi)

	twoPi := new(big.Float).SetPrec(prec).Mul(pi, bignum.NewFloat(2, prec))
	n := new(big.Float).SetPrec(prec).Quo(chi, twoPi)
	turns, _ := n.Int(nil)
	n.SetInt(turns)
	n.Mul(n, twoPi)
	chi.Sub(chi, n)

	if chi.Cmp(pi) > 0 {
		chi.Sub(chi, twoPi)
	}
	if chi.Cmp(new(big.Float).Neg(pi)) < 0 {
		chi.Add(chi, twoPi)
	}
	return chi
}

func negligible(t *big.Float, exp int) bool {
	return t.Sign() == 0 || t.MantExp(nil) < exp
}

var piCache sync.Map // uint -> *big.Float, read-only once stored

func cachedPi(prec uint) *big.Float {
	if v, ok := piCache.Load(prec); ok {
		return v.(*big.Float)
	}
	v, _ := piCache.LoadOrStore(prec, bignum.Pi(prec))
	return v.(*big.Float)
}
