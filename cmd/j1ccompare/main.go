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

// Command j1ccompare measures how accurately the 2·J1(x)/x kernels evaluate at
// single and double precision, against an arbitrary-precision reference.
//
// Usage:
//
//	j1ccompare compare [--linear] [--points N] [--format text|csv|json] [-o FILE]
//	j1ccompare eval [--precision P] -- X...
//	j1ccompare info
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
