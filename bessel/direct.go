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
	stdmath "math"

	"github.com/ajroetker/go-highway/hwy"
)

// Direct computes 2·J1(x)/x from the standard library's J1. J1 itself is
// evaluated in float64 and rounded to T; the scaling by 2/x is done in T.
// Direct(0) = 1.
//
// This is a cross-check for the comparison harness, not a production path.
func Direct[T hwy.Floats](x T) T {
	if x == 0 {
		return 1
	}
	j1 := T(stdmath.J1(float64(x)))
	return T(2) * j1 / x
}

// DirectSlice applies Direct to each element of input.
func DirectSlice[T hwy.Floats](input, output []T) {
	size := min(len(input), len(output))
	for i := range size {
		output[i] = Direct(input[i])
	}
}
