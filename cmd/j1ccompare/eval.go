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
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-j1c/bessel"
	"github.com/ajroetker/go-j1c/bessel/compare"
	"github.com/ajroetker/go-j1c/bessel/reference"
)

func newEvalCmd() *cobra.Command {
	var (
		precision string
		bits      uint
	)
	cmd := &cobra.Command{
		Use:   "eval [flags] -- X...",
		Short: "Print f(x) from the kernel, the standard library and the reference",
		Long: `Print f(x) from the kernel, the standard library and the reference.

Abscissae follow "--" so that negative values are not read as flags:

  j1ccompare eval --precision double -- 1 -8 100`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs := make([]float64, len(args))
			for i, arg := range args {
				x, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				xs[i] = x
			}
			precisions, err := precisionsOrAll(precision)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "x\tprecision\tcephes\tdirect\treference\trel. error\t")
			for _, x := range xs {
				ref, err := reference.J1c(x, bits)
				if err != nil {
					return err
				}
				refValue, _ := ref.Float64()
				for _, p := range precisions {
					if err := evalRow(tw, x, p, refValue, ref.Text('g', 20)); err != nil {
						return err
					}
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&precision, "precision", "all", "single, double or all")
	cmd.Flags().UintVar(&bits, "bits", reference.DefaultBits, "reference precision in bits")
	return cmd
}

func evalRow(tw *tabwriter.Writer, x float64, p bessel.Precision, ref float64, refText string) error {
	approx, err := bessel.Evaluate([]float64{x}, p)
	if err != nil {
		return err
	}
	direct, err := bessel.EvaluateDirect([]float64{x}, p)
	if err != nil {
		return err
	}
	relErr := "n/a"
	if e, err := compare.RelativeError(ref, approx[0]); err == nil {
		relErr = strconv.FormatFloat(e, 'e', 3, 64)
	}
	digits := 17
	if p == bessel.Narrow {
		digits = 9
	}
	fmt.Fprintf(tw, "%g\t%s\t%s\t%s\t%s\t%s\t\n", x, p,
		formatG(approx[0], digits), formatG(direct[0], digits), refText, relErr)
	return nil
}

func formatG(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', digits, 64)
}
