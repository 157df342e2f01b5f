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
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time.
var Version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "j1ccompare",
		Short: "Accuracy of fast 2·J1(x)/x against an arbitrary-precision reference",
		Long: `j1ccompare evaluates f(x) = 2·J1(x)/x with the rational/asymptotic kernel
at single and double precision and reports the relative error of every point
against a high-precision reference.

Settings come from flags, J1C_* environment variables and an optional j1c.yaml.

Example:
  j1ccompare compare
  j1ccompare compare --linear --format csv -o errors.csv
  j1ccompare eval --precision single -- 1 -8 100`,
		Version:      Version,
		SilenceUsage: true,
	}
	root.AddCommand(newCompareCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newInfoCmd())
	return root
}

// newLogger builds a development logger at debug level and a production
// logger otherwise.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if lvl == zapcore.DebugLevel {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
