package cpubackend_test

import (
	"testing"

	"github.com/naisuuuu/fresize/convolution"
	"github.com/naisuuuu/fresize/cpubackend"
)

func TestCeilingNeverExceedsDetected(t *testing.T) {
	if cpubackend.Ceiling() > cpubackend.Detected() {
		t.Errorf("Ceiling() = %v exceeds Detected() = %v", cpubackend.Ceiling(), cpubackend.Detected())
	}
}

func TestSetCapLowersCeiling(t *testing.T) {
	defer cpubackend.SetCap(cpubackend.Detected())

	cpubackend.SetCap(cpubackend.None)
	if got := cpubackend.Ceiling(); got != cpubackend.None {
		t.Errorf("Ceiling() after SetCap(None) = %v, want None", got)
	}
}

func TestToKernelBackendMapping(t *testing.T) {
	cases := []struct {
		in   cpubackend.Backend
		want convolution.Backend
	}{
		{cpubackend.None, convolution.BackendScalar},
		{cpubackend.SSE41, convolution.BackendSSE41},
		{cpubackend.AVX2, convolution.BackendAVX2},
	}
	for _, c := range cases {
		if got := c.in.ToKernelBackend(); got != c.want {
			t.Errorf("%v.ToKernelBackend() = %v, want %v", c.in, got, c.want)
		}
	}
}
