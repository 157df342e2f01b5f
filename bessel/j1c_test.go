package bessel

import (
	"math"
	"testing"

	"github.com/ajroetker/go-highway/hwy"
)

// Values of 2·J1(x)/x from the 500-bit reference evaluator.
var knownValues = []struct {
	x    float64
	want float64
}{
	{1, 0.880101171489867},
	{3, 0.22603930568395764},
	{8, 0.05865908671347866},
	{100, -0.001542907040282243},
}

// envelope bounds |f(x)|: 1 near the origin, 2·sqrt(2/(πx))/x in the tail.
func envelope(x float64) float64 {
	x = math.Abs(x)
	if x == 0 {
		return 1
	}
	return math.Min(1, 2*math.Sqrt(2/(math.Pi*x))/x)
}

func logSpace(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	step := (math.Log10(hi) - math.Log10(lo)) / float64(n-1)
	for i := range xs {
		xs[i] = math.Pow(10, math.Log10(lo)+float64(i)*step)
	}
	return xs
}

func TestJ1cKnownValues(t *testing.T) {
	for _, tt := range knownValues {
		got := J1c(tt.x)
		tol := 5e-8 * envelope(tt.x) * 2
		if math.Abs(got-tt.want) > tol {
			t.Errorf("J1c(%v) = %v, want %v (tol %g)", tt.x, got, tt.want, tol)
		}
		got32 := J1c(float32(tt.x))
		if math.Abs(float64(got32)-tt.want) > 1e-5 {
			t.Errorf("J1c(float32(%v)) = %v, want %v", tt.x, got32, tt.want)
		}
	}
}

func TestJ1cFarTail(t *testing.T) {
	// Measured absolute error at x=100 is 1.03e-10.
	const want = -0.001542907040282243
	if got := J1c(100.0); math.Abs(got-want) > 1.1e-10 {
		t.Errorf("J1c(100) = %v, want %v (abs error %g)", got, want, math.Abs(got-want))
	}
	if got := J1c(-100.0); got != J1c(100.0) {
		t.Errorf("J1c(-100) = %v, want J1c(100) = %v", got, J1c(100.0))
	}
}

func TestJ1cSign(t *testing.T) {
	// f(8) is positive: J1(8) > 0.
	if got := J1c(8.0); got <= 0 {
		t.Errorf("J1c(8) = %v, want > 0", got)
	}
	if got := J1c(float32(8)); got <= 0 {
		t.Errorf("J1c(float32(8)) = %v, want > 0", got)
	}
}

func TestJ1cZero(t *testing.T) {
	if got := J1c(0.0); got != 1 {
		t.Errorf("J1c(0) = %v, want 1", got)
	}
	if got := J1c(math.Copysign(0, -1)); got != 1 {
		t.Errorf("J1c(-0) = %v, want 1", got)
	}
	if got := J1c(float32(0)); got != 1 {
		t.Errorf("J1c(float32(0)) = %v, want 1", got)
	}

	in := []float64{0, 1, 0, -0.5, 0, 9, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	out := make([]float64, len(in))
	BaseJ1c(in, out)
	for i, x := range in {
		if x == 0 && out[i] != 1 {
			t.Errorf("BaseJ1c: output[%d] = %v at x=0, want 1", i, out[i])
		}
	}
}

func TestJ1cSmallArgumentLimit(t *testing.T) {
	if got := J1c(1e-6); math.Abs(got-1) > 1e-9 {
		t.Errorf("J1c(1e-6) = %v, want 1 within 1e-9", got)
	}
	if got := J1c(float32(1e-6)); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("J1c(float32(1e-6)) = %v, want 1 within 1e-6", got)
	}
}

func TestJ1cBranchContinuity(t *testing.T) {
	below := J1c(BranchThreshold - 1e-6)
	above := J1c(BranchThreshold + 1e-6)
	if jump := math.Abs(above - below); jump > 1e-7 {
		t.Errorf("|J1c(8+1e-6) - J1c(8-1e-6)| = %g, want <= 1e-7", jump)
	}
}

func TestJ1cSymmetry(t *testing.T) {
	xs := logSpace(1e-3, 1e5, 400)
	xs = append(xs, 7.999999, 8, 8.000001, 1e-30, 3e30)

	for _, x := range xs {
		if a, b := J1c(x), J1c(-x); math.Float64bits(a) != math.Float64bits(b) {
			t.Errorf("J1c(%v) = %v, J1c(-%v) = %v", x, a, x, b)
		}
		x32 := float32(x)
		if a, b := J1c(x32), J1c(-x32); math.Float32bits(a) != math.Float32bits(b) {
			t.Errorf("J1c(float32(%v)) = %v, J1c(-float32(%v)) = %v", x, a, x, b)
		}
	}

	pos := make([]float64, len(xs))
	neg := make([]float64, len(xs))
	for i, x := range xs {
		neg[i] = -x
	}
	BaseJ1c(xs, pos)
	negOut := make([]float64, len(xs))
	BaseJ1c(neg, negOut)
	for i := range xs {
		if math.Float64bits(pos[i]) != math.Float64bits(negOut[i]) {
			t.Errorf("BaseJ1c: f(%v) = %v, f(-%v) = %v", xs[i], pos[i], xs[i], negOut[i])
		}
	}
}

func TestJ1cAccuracyAgainstStdlib(t *testing.T) {
	for _, x := range logSpace(1e-3, 1e5, 400) {
		want := 2 * math.J1(x) / x
		got := J1c(x)
		if err := math.Abs(got-want) / envelope(x); err > 1e-7 {
			t.Errorf("J1c(%v) = %v, want %v (envelope-scaled error %g)", x, got, want, err)
		}
	}
}

func testBaseMatchesScalar[T hwy.Floats](t *testing.T, name string, bits func(T) uint64) {
	t.Helper()
	for n := 0; n <= 37; n++ {
		in := make([]T, n)
		for i := range in {
			// Straddle the branch threshold and include both signs.
			in[i] = T(float64(i-n/2) * 0.73)
		}
		got := make([]T, n)
		BaseJ1c(in, got)
		for i, x := range in {
			want := J1c(x)
			if bits(got[i]) != bits(want) {
				t.Errorf("%s n=%d: BaseJ1c[%d](%v) = %v, J1c = %v", name, n, i, x, got[i], want)
			}
		}
	}
}

func TestBaseJ1cMatchesScalar(t *testing.T) {
	testBaseMatchesScalar(t, "float32", func(v float32) uint64 { return uint64(math.Float32bits(v)) })
	testBaseMatchesScalar(t, "float64", math.Float64bits)
}

func TestBaseJ1cWideGrid(t *testing.T) {
	xs := logSpace(1e-3, 1e5, 400)
	got := make([]float64, len(xs))
	BaseJ1c(xs, got)
	for i, x := range xs {
		if want := J1c(x); math.Float64bits(got[i]) != math.Float64bits(want) {
			t.Errorf("BaseJ1c(%v) = %v, J1c = %v", x, got[i], want)
		}
	}
}

func TestBaseJ1cShortOutput(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5}
	out := make([]float64, 3)
	BaseJ1c(in, out)
	for i := range out {
		if want := J1c(in[i]); out[i] != want {
			t.Errorf("output[%d] = %v, want %v", i, out[i], want)
		}
	}
}

func TestJ1cSlice(t *testing.T) {
	in := []float32{0, 0.5, -2, 8, 12.5, -400}
	out := make([]float32, len(in))
	J1cSlice(in, out)
	for i, x := range in {
		if want := J1c(x); out[i] != want {
			t.Errorf("J1cSlice[%d](%v) = %v, want %v", i, x, out[i], want)
		}
	}
}

func TestJ1cTruncated(t *testing.T) {
	xs := logSpace(1e-2, 1e3, 64)

	full := make([]float64, len(xs))
	J1cTruncated(xs, full, 0)
	for i, x := range xs {
		if want := J1c(x); math.Float64bits(full[i]) != math.Float64bits(want) {
			t.Errorf("J1cTruncated(%v, 0) = %v, want %v", x, full[i], want)
		}
	}

	dropped := make([]float64, len(xs))
	J1cTruncated(xs, dropped, 1)
	var differs bool
	for i := range xs {
		if dropped[i] != full[i] {
			differs = true
		}
		if math.IsNaN(dropped[i]) {
			t.Errorf("J1cTruncated(%v, 1) = NaN", xs[i])
		}
	}
	if !differs {
		t.Error("J1cTruncated(drop=1) matches the full kernel everywhere")
	}

	zero := make([]float64, 1)
	J1cTruncated([]float64{0}, zero, 2)
	if zero[0] != 1 {
		t.Errorf("J1cTruncated(0, 2) = %v, want 1", zero[0])
	}
}

func TestJ1cTruncatedPanics(t *testing.T) {
	for _, drop := range []int{-1, MaxTruncation + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("J1cTruncated(drop=%d) did not panic", drop)
				}
			}()
			J1cTruncated([]float64{1}, make([]float64, 1), drop)
		}()
	}
}

func TestDirect(t *testing.T) {
	if got := Direct(0.0); got != 1 {
		t.Errorf("Direct(0) = %v, want 1", got)
	}
	if got := Direct(float32(0)); got != 1 {
		t.Errorf("Direct(float32(0)) = %v, want 1", got)
	}
	for _, tt := range knownValues {
		if got := Direct(tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Direct(%v) = %v, want %v", tt.x, got, tt.want)
		}
		if a, b := Direct(tt.x), Direct(-tt.x); a != b {
			t.Errorf("Direct(%v) = %v, Direct(-%v) = %v", tt.x, a, tt.x, b)
		}
	}

	in := []float32{0, 1, 3}
	out := make([]float32, len(in))
	DirectSlice(in, out)
	for i, x := range in {
		if want := Direct(x); out[i] != want {
			t.Errorf("DirectSlice[%d](%v) = %v, want %v", i, x, out[i], want)
		}
	}
}

func BenchmarkBaseJ1c(b *testing.B) {
	size := 4096
	input := make([]float32, size)
	output := make([]float32, size)
	for i := range input {
		input[i] = float32(i%200) * 0.1
	}

	b.Run("Float32", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			BaseJ1c(input, output)
		}
	})

	input64 := make([]float64, size)
	output64 := make([]float64, size)
	for i := range input64 {
		input64[i] = float64(i%200) * 0.1
	}

	b.Run("Float64", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			BaseJ1c(input64, output64)
		}
	})
}

func BenchmarkJ1cSlice(b *testing.B) {
	size := 4096
	input := make([]float64, size)
	output := make([]float64, size)
	for i := range input {
		input[i] = float64(i%200) * 0.1
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		J1cSlice(input, output)
	}
}

func TestJ1(t *testing.T) {
	for _, x := range []float64{0.1, 1, 5, 7.99, 8, 12, 100, 2500} {
		want := math.J1(x)
		if got := J1(x); math.Abs(got-want) > 1e-7 {
			t.Errorf("J1(%v) = %v, want %v", x, got, want)
		}
		if a, b := J1(x), J1(-x); a != -b {
			t.Errorf("J1(%v) = %v, J1(-%v) = %v, want odd", x, a, x, b)
		}
	}
	if got := J1(0.0); got != 0 {
		t.Errorf("J1(0) = %v, want 0", got)
	}
}

func TestJ1cDivided(t *testing.T) {
	if got := J1cDivided(0.0); got != 1 {
		t.Errorf("J1cDivided(0) = %v, want 1", got)
	}
	for _, tt := range knownValues {
		got := J1cDivided(tt.x)
		if math.Abs(got-tt.want) > 1e-7*envelope(tt.x) {
			t.Errorf("J1cDivided(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}

	in := []float32{0, 0.3, -9, 40}
	out := make([]float32, len(in))
	J1cDividedSlice(in, out)
	for i, x := range in {
		if want := J1cDivided(x); out[i] != want {
			t.Errorf("J1cDividedSlice[%d](%v) = %v, want %v", i, x, out[i], want)
		}
	}
}
