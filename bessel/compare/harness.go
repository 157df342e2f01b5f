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

// Package compare measures the fixed-precision evaluators of 2·J1(x)/x
// against the arbitrary-precision reference.
//
// A Harness evaluates the reference once per grid, then every selected
// variant at every selected precision, and records the relative error of
// each point clamped to [0, 1]:
//
//	h, err := compare.New(compare.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer h.Close()
//	report, err := h.Run(compare.DefaultLogGrid())
//
// Non-finite results are reported as *NonFiniteError, never clamped.
package compare

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ajroetker/go-j1c/bessel"
	"github.com/ajroetker/go-j1c/bessel/reference"
	"github.com/ajroetker/go-j1c/internal/hostinfo"
	"github.com/ajroetker/go-j1c/workerpool"
)

// DefaultLowBits is the precision of the LowBitReference variant.
const DefaultLowBits uint = 11

// Config selects what a Harness compares.
type Config struct {
	// Precisions to evaluate at. Empty means Narrow and Wide.
	Precisions []bessel.Precision
	// Variants to evaluate. Empty means DefaultVariants.
	Variants []Variant
	// ReferenceBits is the reference precision, reference.DefaultBits if 0.
	ReferenceBits uint
	// LowBits is the precision of LowBitReference, DefaultLowBits if 0.
	LowBits uint
	// Workers sizes the worker pool; 0 means GOMAXPROCS.
	Workers int
	// Logger receives phase timings at debug level. Nil means no logging.
	Logger *zap.Logger
}

// DefaultConfig compares Direct and Cephes at both precisions against a
// 500-bit reference.
func DefaultConfig() Config {
	return Config{
		Precisions:    bessel.Precisions(),
		Variants:      DefaultVariants(),
		ReferenceBits: reference.DefaultBits,
		LowBits:       DefaultLowBits,
	}
}

func (c Config) withDefaults() Config {
	if len(c.Precisions) == 0 {
		c.Precisions = bessel.Precisions()
	}
	if len(c.Variants) == 0 {
		c.Variants = DefaultVariants()
	}
	if c.ReferenceBits == 0 {
		c.ReferenceBits = reference.DefaultBits
	}
	if c.LowBits == 0 {
		c.LowBits = DefaultLowBits
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

func (c Config) validate() error {
	for _, p := range c.Precisions {
		if !p.Valid() {
			return fmt.Errorf("%w: %d", bessel.ErrUnknownPrecision, int(p))
		}
	}
	for _, v := range c.Variants {
		if _, err := ParseVariant(string(v)); err != nil {
			return err
		}
	}
	if c.ReferenceBits < reference.MinBits {
		return fmt.Errorf("compare: reference bits %d below %d", c.ReferenceBits, reference.MinBits)
	}
	if c.Workers < 0 {
		return errors.New("compare: negative worker count")
	}
	return nil
}

// Harness runs comparisons. It owns a worker pool; call Close when done.
type Harness struct {
	cfg  Config
	pool *workerpool.Pool
	log  *zap.Logger
}

// New validates cfg and starts the worker pool.
func New(cfg Config) (*Harness, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Harness{
		cfg:  cfg,
		pool: workerpool.New(cfg.Workers),
		log:  cfg.Logger,
	}, nil
}

// Config returns the effective configuration, defaults filled in.
func (h *Harness) Config() Config { return h.cfg }

// Close stops the worker pool.
func (h *Harness) Close() { h.pool.Close() }

// Run evaluates the reference on grid and then every (precision, variant)
// pair, in Config order, precision-major.
func (h *Harness) Run(grid Grid) (*Report, error) {
	if grid.Len() == 0 {
		return nil, fmt.Errorf("%w: no points", ErrInvalidGrid)
	}
	xs := grid.Values()

	start := time.Now()
	ref, err := reference.EvaluateParallel(h.pool, xs, h.cfg.ReferenceBits)
	if err != nil {
		return nil, fmt.Errorf("compare: reference: %w", err)
	}
	if err := checkFinite(Reference, bessel.Wide, xs, ref); err != nil {
		return nil, err
	}
	refElapsed := time.Since(start)
	h.log.Debug("reference evaluated",
		zap.Int("points", len(xs)),
		zap.Uint("bits", h.cfg.ReferenceBits),
		zap.Duration("elapsed", refElapsed))

	report := &Report{
		Grid:             grid,
		Reference:        ref,
		ReferenceBits:    h.cfg.ReferenceBits,
		ReferenceElapsed: refElapsed,
		Host:             hostinfo.Detect(),
	}
	for _, p := range h.cfg.Precisions {
		for _, v := range h.cfg.Variants {
			s, err := h.series(v, p, xs, ref)
			if err != nil {
				return nil, err
			}
			h.log.Debug("series evaluated",
				zap.String("label", s.Label),
				zap.Float64("max_error", s.Stats.Max),
				zap.Duration("elapsed", s.Elapsed))
			report.Series = append(report.Series, s)
		}
	}
	return report, nil
}

func (h *Harness) series(v Variant, p bessel.Precision, xs, ref []float64) (Series, error) {
	start := time.Now()
	values, err := h.evaluate(v, xs, p)
	if err != nil {
		return Series{}, fmt.Errorf("compare: %s: %w", Label(v, p), err)
	}
	elapsed := time.Since(start)
	if err := checkFinite(v, p, xs, values); err != nil {
		return Series{}, err
	}
	return newSeries(v, p, xs, ref, values, elapsed)
}

// Compare runs the vectorised kernel at precision p against a default
// reference and returns its error series.
func Compare(grid Grid, p bessel.Precision) (Series, error) {
	h, err := New(Config{Precisions: []bessel.Precision{p}, Variants: []Variant{Cephes}})
	if err != nil {
		return Series{}, err
	}
	defer h.Close()

	report, err := h.Run(grid)
	if err != nil {
		return Series{}, err
	}
	return report.Series[0], nil
}
