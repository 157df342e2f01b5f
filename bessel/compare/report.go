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

package compare

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"

	"github.com/ajroetker/go-j1c/bessel"
	"github.com/ajroetker/go-j1c/internal/hostinfo"
)

// ErrMissingSeries reports a lookup for a series the report does not hold.
var ErrMissingSeries = errors.New("compare: series not in report")

// Mode selects what WriteCSV emits per series.
type Mode string

const (
	// ErrorMode writes the clamped relative error.
	ErrorMode Mode = "diff"
	// ValueMode writes the value clipped to the reference's range, next to
	// the reference itself.
	ValueMode Mode = "value"
)

// ParseMode accepts "diff"/"error" or "value".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "diff", "error", "":
		return ErrorMode, nil
	case "value":
		return ValueMode, nil
	}
	return "", fmt.Errorf("compare: unknown mode %q", s)
}

// Report is the outcome of Harness.Run.
type Report struct {
	Grid             Grid          `json:"-"`
	Reference        []float64     `json:"reference"`
	ReferenceBits    uint          `json:"reference_bits"`
	ReferenceElapsed time.Duration `json:"reference_elapsed_ns"`
	Series           []Series      `json:"series"`
	Host             hostinfo.Info `json:"host"`
}

// Lookup returns the series for variant v at precision p.
func (r *Report) Lookup(v Variant, p bessel.Precision) (Series, bool) {
	return lo.Find(r.Series, func(s Series) bool {
		return s.Variant == v && s.Precision == p
	})
}

// OrderingViolations counts points where the narrow error of v is smaller
// than its wide error. Rounding makes a few such points normal; many of them
// mean the narrow path is not really narrow.
func (r *Report) OrderingViolations(v Variant) (int, error) {
	narrow, ok := r.Lookup(v, bessel.Narrow)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingSeries, Label(v, bessel.Narrow))
	}
	wide, ok := r.Lookup(v, bessel.Wide)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingSeries, Label(v, bessel.Wide))
	}
	var n int
	for i := range narrow.Errors {
		if narrow.Errors[i] < wide.Errors[i] {
			n++
		}
	}
	return n, nil
}

// WriteText writes a summary table, one row per series.
func (r *Report) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s, reference %d bits (%s)\nhost: %s [%s]\n\n",
		r.Grid, r.ReferenceBits, r.ReferenceElapsed.Round(time.Millisecond), r.Host, r.Host.FeatureList()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "series\tmax\tat x\tmean\tmedian\tp99\tsaturated\ttime\t")
	for _, s := range r.Series {
		fmt.Fprintf(tw, "%s\t%.3g\t%.4g\t%.3g\t%.3g\t%.3g\t%d\t%s\t\n",
			s.Label, s.Stats.Max, s.Stats.ArgMax, s.Stats.Mean, s.Stats.Median, s.Stats.P99,
			s.Stats.Saturated, s.Elapsed.Round(time.Microsecond))
	}
	return tw.Flush()
}

// WriteCSV writes one row per grid point: x, the reference, then one column
// per series holding its error or clipped value depending on mode.
func (r *Report) WriteCSV(w io.Writer, mode Mode) error {
	cw := csv.NewWriter(w)

	header := append([]string{"x", "reference"}, lo.Map(r.Series, func(s Series, _ int) string {
		return s.Label
	})...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, ref := range r.Reference {
		row[0] = formatFloat(r.Grid.At(i))
		row[1] = formatFloat(ref)
		for j, s := range r.Series {
			if mode == ValueMode {
				row[j+2] = formatFloat(s.Clipped[i])
			} else {
				row[j+2] = formatFloat(s.Errors[i])
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonReport struct {
	*Report
	Grid    []float64 `json:"grid"`
	Spacing Spacing   `json:"spacing"`
}

// WriteJSON writes the full report, grid included, as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Report: r, Grid: r.Grid.Values(), Spacing: r.Grid.Spacing()})
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 17, 64)
}
