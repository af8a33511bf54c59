package convolution_test

import (
	"testing"

	"github.com/naisuuuu/fresize/convolution"
	"github.com/naisuuuu/fresize/filter"
)

func TestQuantizeRowSumsToPowerOfTwo(t *testing.T) {
	coeffs := convolution.Build(1920, 255, filter.New(filter.Lanczos3))
	guard := convolution.NewNormalizerGuard16(coeffs.Values, coeffs.WindowSize, 0xff)
	want := int32(1) << guard.Precision()

	for i := 0; i < coeffs.Len(); i++ {
		row := guard.QuantizeRow(coeffs.Chunk(i))
		var sum int32
		for _, v := range row {
			sum += int32(v)
		}
		if sum != want {
			t.Errorf("row %d: i16 taps sum to %d, want %d", i, sum, want)
		}
	}
}

func TestPrecisionWithinRange(t *testing.T) {
	coeffs := convolution.Build(1920, 255, filter.New(filter.Lanczos3))
	guard := convolution.NewNormalizerGuard16(coeffs.Values, coeffs.WindowSize, 0xff)
	if guard.Precision() < 1 || guard.Precision() > 14 {
		t.Errorf("Precision() = %d, want in [1, 14]", guard.Precision())
	}
}

func TestClipSaturates(t *testing.T) {
	coeffs := convolution.Build(10, 10, filter.New(filter.Box))
	guard := convolution.NewNormalizerGuard16(coeffs.Values, coeffs.WindowSize, 0xff)

	// A huge positive accumulator saturates to the max component value.
	if got := guard.Clip(1 << 30); got != 0xff {
		t.Errorf("Clip(huge positive) = %d, want 255", got)
	}
	// A negative accumulator saturates to zero.
	if got := guard.Clip(-1 << 30); got != 0 {
		t.Errorf("Clip(huge negative) = %d, want 0", got)
	}
}

func TestClipRoundsToNearest(t *testing.T) {
	coeffs := convolution.Build(10, 10, filter.New(filter.Box))
	guard := convolution.NewNormalizerGuard16(coeffs.Values, coeffs.WindowSize, 0xff)
	p := guard.Precision()

	// acc = bias + (value << p) should clip back to exactly value.
	value := int32(42)
	acc := guard.Bias() + value<<p
	if got := guard.Clip(acc); got != uint32(value) {
		t.Errorf("Clip(bias + %d<<%d) = %d, want %d", value, p, got, value)
	}
}
