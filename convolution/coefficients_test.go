package convolution_test

import (
	"math"
	"testing"

	"github.com/naisuuuu/fresize/convolution"
	"github.com/naisuuuu/fresize/filter"
)

func sumRow(row []float64) float64 {
	var s float64
	for _, v := range row {
		s += v
	}
	return s
}

func TestBuildTapsSumToOne(t *testing.T) {
	cases := []struct {
		srcLen, dstLen int
		kind           filter.Kind
	}{
		{1920, 255, filter.Lanczos3},
		{100, 5016, filter.Lanczos3},
		{1200, 1200, filter.CatmullRom},
		{7, 3, filter.Box},
		{3, 7, filter.Mitchell},
	}
	for _, tt := range cases {
		coeffs := convolution.Build(tt.srcLen, tt.dstLen, filter.New(tt.kind))
		if coeffs.Len() != tt.dstLen {
			t.Fatalf("Len() = %d, want %d", coeffs.Len(), tt.dstLen)
		}
		for j := 0; j < coeffs.Len(); j++ {
			row := coeffs.Chunk(j)
			if got := sumRow(row); math.Abs(got-1) > 1e-9 {
				t.Errorf("%v src=%d dst=%d row %d sums to %v, want 1", tt.kind, tt.srcLen, tt.dstLen, j, got)
			}
		}
	}
}

func TestBuildBoundsWithinSource(t *testing.T) {
	coeffs := convolution.Build(1920, 255, filter.New(filter.Lanczos3))
	for j, b := range coeffs.Bounds {
		if b.Start+b.Size > 1920 {
			t.Errorf("bound %d: start=%d size=%d exceeds src_len=1920", j, b.Start, b.Size)
		}
	}
}

func TestBuildWindowSizeEven(t *testing.T) {
	for _, k := range []filter.Kind{filter.Box, filter.Bilinear, filter.Hamming, filter.Mitchell, filter.CatmullRom, filter.Lanczos3} {
		coeffs := convolution.Build(1920, 255, filter.New(k))
		if coeffs.WindowSize%2 != 0 {
			t.Errorf("%v: WindowSize = %d, want even", k, coeffs.WindowSize)
		}
	}
}

func TestBuildPanicsOnZeroLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for zero src_len")
		}
	}()
	convolution.Build(0, 10, filter.New(filter.Box))
}

func TestBuildIdentityResizeIsNearDelta(t *testing.T) {
	// When src_len == dst_len, every destination sample should be dominated
	// by its corresponding source sample.
	coeffs := convolution.Build(100, 100, filter.New(filter.CatmullRom))
	row := coeffs.Chunk(50)
	b := coeffs.Bounds[50]
	// The tap at offset (50 - b.Start) should be the largest in the row.
	center := int(50 - b.Start)
	for i, v := range row {
		if i != center && v > row[center] {
			t.Errorf("identity resize: tap %d (%v) exceeds center tap %d (%v)", i, v, center, row[center])
		}
	}
}
