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
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/go-j1c/bessel"
	"github.com/ajroetker/go-j1c/bessel/reference"
)

// ErrUnknownVariant reports an unrecognised variant name.
var ErrUnknownVariant = errors.New("compare: unknown variant")

// Variant names one way of computing f at a fixed precision.
type Variant string

const (
	// Cephes is the vectorised two-branch kernel, bessel.BaseJ1c.
	Cephes Variant = "cephes"
	// CephesScalar is the per-element kernel, bessel.J1cSlice.
	CephesScalar Variant = "cephes-scalar"
	// CephesTruncated drops the highest-order term of every polynomial.
	CephesTruncated Variant = "cephes-drop1"
	// CephesDivided computes J1 first and divides by x, bessel.J1cDivided.
	CephesDivided Variant = "cephes-div"
	// Direct scales the standard library's J1, bessel.Direct.
	Direct Variant = "direct"
	// LowBitReference is the reference evaluator at Config.LowBits.
	LowBitReference Variant = "mp-lowbits"

	// Reference labels the high-precision reference in errors. It is not a
	// selectable variant.
	Reference Variant = "reference"
)

// Variants lists every selectable variant.
func Variants() []Variant {
	return []Variant{Cephes, CephesScalar, CephesTruncated, CephesDivided, Direct, LowBitReference}
}

// DefaultVariants are compared when Config.Variants is empty.
func DefaultVariants() []Variant {
	return []Variant{Direct, Cephes}
}

// ParseVariant accepts a variant name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	if !lo.Contains(Variants(), v) {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
	return v, nil
}

// ParseVariants parses each name, dropping duplicates.
func ParseVariants(names []string) ([]Variant, error) {
	out := make([]Variant, 0, len(names))
	for _, name := range names {
		v, err := ParseVariant(name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return lo.Uniq(out), nil
}

// Label is the series label, "<variant> <precision>".
func Label(v Variant, p bessel.Precision) string {
	return fmt.Sprintf("%s %s", v, p)
}

// evaluate computes variant v over xs at precision p.
func (h *Harness) evaluate(v Variant, xs []float64, p bessel.Precision) ([]float64, error) {
	switch v {
	case Cephes:
		return bessel.EvaluateParallel(h.pool, xs, p)
	case CephesScalar:
		return bessel.EvaluateScalar(xs, p)
	case CephesTruncated:
		return bessel.EvaluateTruncated(xs, p, 1)
	case CephesDivided:
		return bessel.EvaluateDivided(xs, p)
	case Direct:
		return bessel.EvaluateDirect(xs, p)
	case LowBitReference:
		ys, err := reference.EvaluateParallel(h.pool, xs, h.cfg.LowBits)
		if err != nil {
			return nil, err
		}
		return lo.Map(ys, func(y float64, _ int) float64 { return p.Round(y) }), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, string(v))
}
