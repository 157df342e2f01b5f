package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-j1c/bessel"
	"github.com/ajroetker/go-j1c/bessel/compare"
)

// inTempDir runs the test from an empty directory so no stray j1c.yaml is
// picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.False(t, cfg.Linear)
	assert.Equal(t, compare.DefaultLogPoints, cfg.Points)
	assert.Equal(t, compare.DefaultLogMin, cfg.Min)
	assert.Equal(t, compare.DefaultLogMax, cfg.Max)
	assert.Equal(t, uint(500), cfg.Bits)
	assert.Equal(t, uint(11), cfg.LowBits)
	assert.Equal(t, []bessel.Precision{bessel.Narrow, bessel.Wide}, cfg.Precisions)
	assert.Equal(t, []compare.Variant{compare.Direct, compare.Cephes}, cfg.Variants)
	assert.Equal(t, FormatText, cfg.Format)
	assert.Equal(t, compare.ErrorMode, cfg.Mode)
	assert.Equal(t, "info", cfg.LogLevel)

	withFlags, err := Load(flagSet(t))
	require.NoError(t, err)
	assert.Equal(t, cfg, withFlags)
}

func TestLoadLinearDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load(flagSet(t, "--linear"))
	require.NoError(t, err)
	assert.True(t, cfg.Linear)
	assert.Equal(t, compare.DefaultLinearPoints, cfg.Points)
	assert.Equal(t, 1.0, cfg.Min)
	assert.Equal(t, 1000.0, cfg.Max)

	grid, err := cfg.Grid()
	require.NoError(t, err)
	assert.Equal(t, compare.Linear, grid.Spacing())
	assert.Equal(t, 2000, grid.Len())
}

func TestLoadSingleBound(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		min, max float64
	}{
		{"log max only", []string{"--max", "50"}, nil, compare.DefaultLogMin, 50},
		{"log min only", []string{"--min", "5"}, nil, 5, compare.DefaultLogMax},
		{"linear max only", []string{"--linear", "--max", "10"}, nil, compare.DefaultLinearMin, 10},
		{"linear min only", []string{"--linear", "--min", "500"}, nil, 500, compare.DefaultLinearMax},
		{"linear zero min", []string{"--linear", "--min", "0"}, nil, 0, compare.DefaultLinearMax},
		{"env max only", nil, map[string]string{"J1C_MAX": "20"}, compare.DefaultLogMin, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(flagSet(t, tt.args...))
			require.NoError(t, err)
			assert.Equal(t, tt.min, cfg.Min)
			assert.Equal(t, tt.max, cfg.Max)

			_, err = cfg.Grid()
			assert.NoError(t, err)
		})
	}
}

func TestLoadEnvironment(t *testing.T) {
	inTempDir(t)
	t.Setenv("J1C_POINTS", "50")
	t.Setenv("J1C_VARIANTS", "cephes,cephes-drop1")
	t.Setenv("J1C_PRECISION", "double")
	t.Setenv("J1C_LOW_BITS", "20")

	cfg, err := Load(flagSet(t))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Points)
	assert.Equal(t, []compare.Variant{compare.Cephes, compare.CephesTruncated}, cfg.Variants)
	assert.Equal(t, []bessel.Precision{bessel.Wide}, cfg.Precisions)
	assert.Equal(t, uint(20), cfg.LowBits)

	// Flags beat the environment.
	cfg, err = Load(flagSet(t, "--points", "12", "--variants", "direct"))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Points)
	assert.Equal(t, []compare.Variant{compare.Direct}, cfg.Variants)
}

func TestLoadConfigFile(t *testing.T) {
	dir := inTempDir(t)
	yaml := "points: 77\nformat: csv\nmode: value\nmin: 0.5\nmax: 50\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "j1c.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 77, cfg.Points)
	assert.Equal(t, FormatCSV, cfg.Format)
	assert.Equal(t, compare.ValueMode, cfg.Mode)
	assert.Equal(t, 0.5, cfg.Min)
	assert.Equal(t, 50.0, cfg.Max)

	t.Setenv("J1C_FORMAT", "json")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Format)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bits: 200\n"), 0o644))

	cfg, err := Load(flagSet(t, "--config", path))
	require.NoError(t, err)
	assert.Equal(t, uint(200), cfg.Bits)

	_, err = Load(flagSet(t, "--config", filepath.Join(dir, "missing.yaml")))
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"format", map[string]string{"J1C_FORMAT": "xml"}, nil},
		{"precision", map[string]string{"J1C_PRECISION": "half"}, nil},
		{"variant", nil, []string{"--variants", "fast"}},
		{"bits", nil, []string{"--bits", "16"}},
		{"points", nil, []string{"--points", "1"}},
		{"bounds", nil, []string{"--min", "10", "--max", "1"}},
		{"log lower bound", nil, []string{"--min=-1", "--max=1"}},
		{"log level", map[string]string{"J1C_LOG_LEVEL": "loud"}, nil},
		{"mode", nil, []string{"--mode", "plot"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(flagSet(t, tt.args...))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestHarnessConfig(t *testing.T) {
	inTempDir(t)
	cfg, err := Load(flagSet(t, "--bits", "256", "--workers", "3"))
	require.NoError(t, err)

	hc := cfg.Harness()
	assert.Equal(t, uint(256), hc.ReferenceBits)
	assert.Equal(t, 3, hc.Workers)
	assert.Equal(t, cfg.Variants, hc.Variants)
}
