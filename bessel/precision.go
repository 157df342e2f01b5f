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
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPrecision is returned for a Precision outside {Narrow, Wide} or
// an unrecognised precision name.
var ErrUnknownPrecision = errors.New("bessel: unknown precision")

// Precision selects the floating-point width of an evaluation.
type Precision int

const (
	// Narrow evaluates in float32.
	Narrow Precision = iota
	// Wide evaluates in float64.
	Wide
)

// Precisions returns every supported precision, narrow first.
func Precisions() []Precision {
	return []Precision{Narrow, Wide}
}

// String returns "single" or "double".
func (p Precision) String() string {
	switch p {
	case Narrow:
		return "single"
	case Wide:
		return "double"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// Valid reports whether p is Narrow or Wide.
func (p Precision) Valid() bool {
	return p == Narrow || p == Wide
}

// MantissaBits returns the significand width including the implicit bit.
func (p Precision) MantissaBits() int {
	if p == Narrow {
		return 24
	}
	return 53
}

// Round rounds x to the width selected by p.
func (p Precision) Round(x float64) float64 {
	if p == Narrow {
		return float64(float32(x))
	}
	return x
}

// MarshalText implements encoding.TextMarshaler.
func (p Precision) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPrecision, int(p))
	}
	return []byte(p.String()), nil
}

// ParsePrecision maps a name to a Precision. It accepts narrow, single,
// float32, f32, wide, double, float64 and f64, case-insensitively.
func ParsePrecision(s string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "narrow", "single", "float32", "f32":
		return Narrow, nil
	case "wide", "double", "float64", "f64":
		return Wide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPrecision, s)
}
