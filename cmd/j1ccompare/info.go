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

package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-highway/hwy"

	"github.com/ajroetker/go-j1c/internal/hostinfo"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the SIMD target and CPU features of this host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := hostinfo.Detect()
			p := message.NewPrinter(language.English)
			w := cmd.OutOrStdout()
			p.Fprintf(w, "GOOS: %s\n", info.GOOS)
			p.Fprintf(w, "GOARCH: %s\n", info.GOARCH)
			p.Fprintf(w, "NumCPU: %d\n", info.NumCPU)
			p.Fprintf(w, "Highway dispatch level: %v\n", hwy.CurrentLevel())
			p.Fprintf(w, "Highway dispatch name: %s\n", info.DispatchName)
			p.Fprintf(w, "Highway dispatch width: %d bytes (%d float32 lanes, %d float64 lanes)\n",
				info.DispatchWidth, info.DispatchWidth/4, info.DispatchWidth/8)
			p.Fprintf(w, "Features: %s\n", info.FeatureList())
			return nil
		},
	}
}
