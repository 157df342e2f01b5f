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

// Package hostinfo describes the machine a comparison ran on: the SIMD
// target go-highway dispatched to and the CPU features x/sys/cpu reports.
package hostinfo

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-highway/hwy"
)

// Info is a snapshot of the host.
type Info struct {
	GOOS          string   `json:"goos"`
	GOARCH        string   `json:"goarch"`
	NumCPU        int      `json:"num_cpu"`
	DispatchName  string   `json:"dispatch_name"`
	DispatchWidth int      `json:"dispatch_width_bytes"`
	Features      []string `json:"features"`
}

type feature struct {
	name string
	has  bool
}

// Detect reads the current host.
func Detect() Info {
	info := Info{
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
		NumCPU:        runtime.NumCPU(),
		DispatchName:  hwy.CurrentName(),
		DispatchWidth: hwy.CurrentWidth(),
	}

	var features []feature
	switch runtime.GOARCH {
	case "arm64":
		features = []feature{
			{"asimd", cpu.ARM64.HasASIMD},
			{"fp", cpu.ARM64.HasFP},
			{"fphp", cpu.ARM64.HasFPHP},
			{"asimdhp", cpu.ARM64.HasASIMDHP},
			{"asimdfhm", cpu.ARM64.HasASIMDFHM},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
		}
	case "amd64":
		features = []feature{
			{"sse2", cpu.X86.HasSSE2},
			{"sse41", cpu.X86.HasSSE41},
			{"sse42", cpu.X86.HasSSE42},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
			{"avx512bw", cpu.X86.HasAVX512BW},
			{"avx512vl", cpu.X86.HasAVX512VL},
		}
	}
	for _, f := range features {
		if f.has {
			info.Features = append(info.Features, f.name)
		}
	}
	return info
}

// String renders a one-line summary, e.g. "linux/amd64 8 cpus avx2 (32 bytes)".
func (i Info) String() string {
	name := i.DispatchName
	if name == "" {
		name = "scalar"
	}
	return fmt.Sprintf("%s/%s %d cpus %s (%d bytes)", i.GOOS, i.GOARCH, i.NumCPU, name, i.DispatchWidth)
}

// FeatureList joins Features with commas, or returns "none".
func (i Info) FeatureList() string {
	if len(i.Features) == 0 {
		return "none"
	}
	return strings.Join(i.Features, ",")
}
