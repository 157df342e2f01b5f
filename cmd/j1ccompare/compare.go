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
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ajroetker/go-j1c/bessel"
	"github.com/ajroetker/go-j1c/bessel/compare"
	"github.com/ajroetker/go-j1c/internal/config"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Measure relative error of every variant over a grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return runCompare(cmd, cfg, logger)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runCompare(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) error {
	grid, err := cfg.Grid()
	if err != nil {
		return err
	}

	hc := cfg.Harness()
	hc.Logger = logger
	h, err := compare.New(hc)
	if err != nil {
		return err
	}
	defer h.Close()

	logger.Info("comparison started",
		zap.Stringer("grid", grid),
		zap.Uint("bits", cfg.Bits),
		zap.Int("variants", len(cfg.Variants)))
	start := time.Now()
	report, err := h.Run(grid)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, v := range cfg.Variants {
		n, err := report.OrderingViolations(v)
		if err != nil {
			// Only one precision was requested.
			break
		}
		if n > max(1, grid.Len()/100) {
			logger.Warn("single precision beats double on many points",
				zap.String("variant", string(v)), zap.Int("points", n))
		}
	}

	if err := writeReport(cmd.OutOrStdout(), cfg, report); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(cmd.ErrOrStderr(), "compared %d points across %d series in %v\n",
		grid.Len(), len(report.Series), elapsed.Round(time.Millisecond))
	return nil
}

func writeReport(stdout io.Writer, cfg *config.Config, report *compare.Report) (err error) {
	out := stdout
	if cfg.Out != "" {
		f, cerr := os.Create(cfg.Out)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}

	switch cfg.Format {
	case config.FormatCSV:
		return report.WriteCSV(out, cfg.Mode)
	case config.FormatJSON:
		return report.WriteJSON(out)
	default:
		return report.WriteText(out)
	}
}

// precisionsOrAll parses name, or returns every precision for "all".
func precisionsOrAll(name string) ([]bessel.Precision, error) {
	if name == "all" || name == "" {
		return bessel.Precisions(), nil
	}
	p, err := bessel.ParsePrecision(name)
	if err != nil {
		return nil, err
	}
	return []bessel.Precision{p}, nil
}
