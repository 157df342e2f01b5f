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

// Package config loads j1ccompare settings from defaults, an optional
// j1c.yaml, J1C_* environment variables and command-line flags, in increasing
// order of priority.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-j1c/bessel"
	"github.com/ajroetker/go-j1c/bessel/compare"
	"github.com/ajroetker/go-j1c/bessel/reference"
)

// ErrInvalidConfig reports a setting that fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// EnvPrefix prefixes every environment variable, e.g. J1C_POINTS.
const EnvPrefix = "J1C"

// Output formats.
const (
	FormatText = "text"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Config holds the resolved settings of a comparison run.
type Config struct {
	Linear     bool
	Points     int
	Min        float64
	Max        float64
	Bits       uint
	LowBits    uint
	Precisions []bessel.Precision
	Variants   []compare.Variant
	Format     string
	Mode       compare.Mode
	Out        string
	Workers    int
	LogLevel   string
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"config":    "config",
	"linear":    "linear",
	"points":    "points",
	"min":       "min",
	"max":       "max",
	"bits":      "bits",
	"low-bits":  "low_bits",
	"precision": "precision",
	"variants":  "variants",
	"format":    "format",
	"mode":      "mode",
	"out":       "out",
	"workers":   "workers",
	"log-level": "log_level",
}

// Load resolves the configuration. flags may be nil; flags that were not set
// on the command line do not override lower-priority sources.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("j1c")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		Linear:   v.GetBool("linear"),
		Points:   v.GetInt("points"),
		Min:      v.GetFloat64("min"),
		Max:      v.GetFloat64("max"),
		Bits:     v.GetUint("bits"),
		LowBits:  v.GetUint("low_bits"),
		Format:   strings.ToLower(v.GetString("format")),
		Out:      v.GetString("out"),
		Workers:  v.GetInt("workers"),
		LogLevel: v.GetString("log_level"),
	}
	applySpacingDefaults(cfg, v.IsSet("min"), v.IsSet("max"))

	var err error
	for _, name := range splitList(v.GetStringSlice("precision")) {
		p, perr := bessel.ParsePrecision(name)
		if perr != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, perr)
		}
		if !slices.Contains(cfg.Precisions, p) {
			cfg.Precisions = append(cfg.Precisions, p)
		}
	}
	if cfg.Variants, err = compare.ParseVariants(splitList(v.GetStringSlice("variants"))); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Mode, err = compare.ParseMode(v.GetString("mode")); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")

	// Grid. min and max have no default here: an unset bound takes the
	// default of the chosen spacing, and 0 is a valid linear bound.
	v.SetDefault("linear", false)
	v.SetDefault("points", 0)

	// Evaluation
	v.SetDefault("bits", reference.DefaultBits)
	v.SetDefault("low_bits", compare.DefaultLowBits)
	v.SetDefault("precision", []string{"single", "double"})
	v.SetDefault("variants", []string{string(compare.Direct), string(compare.Cephes)})
	v.SetDefault("workers", 0)

	// Output
	v.SetDefault("format", FormatText)
	v.SetDefault("mode", string(compare.ErrorMode))
	v.SetDefault("out", "")
	v.SetDefault("log_level", "info")
}

// applySpacingDefaults fills each grid bound that no source set, and a zero
// point count, from the defaults of the chosen spacing.
func applySpacingDefaults(cfg *Config, minSet, maxSet bool) {
	lo, hi, n := compare.DefaultLogMin, compare.DefaultLogMax, compare.DefaultLogPoints
	if cfg.Linear {
		lo, hi, n = compare.DefaultLinearMin, compare.DefaultLinearMax, compare.DefaultLinearPoints
	}
	if !minSet {
		cfg.Min = lo
	}
	if !maxSet {
		cfg.Max = hi
	}
	if cfg.Points == 0 {
		cfg.Points = n
	}
}

// splitList flattens comma-separated entries, which is how lists arrive from
// environment variables.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func validate(cfg *Config) error {
	switch {
	case cfg.Points < 2:
		return fmt.Errorf("%w: points must be at least 2, got %d", ErrInvalidConfig, cfg.Points)
	case cfg.Min >= cfg.Max:
		return fmt.Errorf("%w: min %v must be below max %v", ErrInvalidConfig, cfg.Min, cfg.Max)
	case !cfg.Linear && cfg.Min <= 0:
		return fmt.Errorf("%w: log grid needs min > 0, got %v", ErrInvalidConfig, cfg.Min)
	case cfg.Bits < reference.MinBits:
		return fmt.Errorf("%w: bits must be at least %d, got %d", ErrInvalidConfig, reference.MinBits, cfg.Bits)
	case cfg.LowBits < 2:
		return fmt.Errorf("%w: low bits must be at least 2, got %d", ErrInvalidConfig, cfg.LowBits)
	case cfg.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, cfg.Workers)
	case len(cfg.Precisions) == 0:
		return fmt.Errorf("%w: no precision selected", ErrInvalidConfig)
	case len(cfg.Variants) == 0:
		return fmt.Errorf("%w: no variant selected", ErrInvalidConfig)
	}
	switch cfg.Format {
	case FormatText, FormatCSV, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, cfg.Format)
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Grid builds the sampling grid described by the configuration.
func (c *Config) Grid() (compare.Grid, error) {
	if c.Linear {
		return compare.LinearGrid(c.Min, c.Max, c.Points)
	}
	return compare.LogGrid(c.Min, c.Max, c.Points)
}

// Harness returns the harness configuration. The caller sets Logger.
func (c *Config) Harness() compare.Config {
	return compare.Config{
		Precisions:    c.Precisions,
		Variants:      c.Variants,
		ReferenceBits: c.Bits,
		LowBits:       c.LowBits,
		Workers:       c.Workers,
	}
}

// RegisterFlags adds the flags Load understands to fs. Their defaults match
// the configuration defaults, so an unset flag changes nothing.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./j1c.yaml if present)")
	fs.Bool("linear", false, "sample linearly instead of logarithmically")
	fs.Int("points", 0, "number of grid points (0: 400 log, 2000 linear)")
	fs.Float64("min", 0, "lowest abscissa (unset: 1e-3 log, 1 linear)")
	fs.Float64("max", 0, "highest abscissa (unset: 1e5 log, 1000 linear)")
	fs.Uint("bits", reference.DefaultBits, "reference precision in bits")
	fs.Uint("low-bits", compare.DefaultLowBits, "precision of the mp-lowbits variant")
	fs.StringSlice("precision", []string{"single", "double"}, "precisions to compare")
	fs.StringSlice("variants", []string{string(compare.Direct), string(compare.Cephes)},
		"variants to compare: cephes, cephes-scalar, cephes-drop1, cephes-div, direct, mp-lowbits")
	fs.Int("workers", 0, "worker goroutines (0: GOMAXPROCS)")
	fs.String("format", FormatText, "output format: text, csv or json")
	fs.String("mode", string(compare.ErrorMode), "csv columns: diff (relative error) or value")
	fs.StringP("out", "o", "", "write output to this file instead of stdout")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
}
