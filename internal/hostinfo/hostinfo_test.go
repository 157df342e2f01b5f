package hostinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	info := Detect()

	if info.GOOS != runtime.GOOS || info.GOARCH != runtime.GOARCH {
		t.Errorf("Detect() = %s/%s, want %s/%s", info.GOOS, info.GOARCH, runtime.GOOS, runtime.GOARCH)
	}
	if info.NumCPU < 1 {
		t.Errorf("NumCPU = %d, want >= 1", info.NumCPU)
	}
	if runtime.GOARCH == "amd64" && !strings.Contains(info.FeatureList(), "sse2") {
		t.Errorf("amd64 features %q missing sse2", info.FeatureList())
	}
}

func TestString(t *testing.T) {
	info := Info{GOOS: "linux", GOARCH: "amd64", NumCPU: 8, DispatchName: "avx2", DispatchWidth: 32}
	if got, want := info.String(), "linux/amd64 8 cpus avx2 (32 bytes)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	info.DispatchName = ""
	if got := info.String(); !strings.Contains(got, "scalar") {
		t.Errorf("String() = %q, want scalar fallback name", got)
	}
	if got := info.FeatureList(); got != "none" {
		t.Errorf("FeatureList() = %q, want none", got)
	}
}
