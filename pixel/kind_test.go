package pixel_test

import (
	"testing"

	"github.com/naisuuuu/fresize/pixel"
)

func TestBytesPerPixel(t *testing.T) {
	tests := []struct {
		kind pixel.Kind
		want int
	}{
		{pixel.U8, 1},
		{pixel.U8x3, 3},
		{pixel.U8x4, 4},
		{pixel.U16, 2},
		{pixel.U16x3, 6},
		{pixel.U16x4, 8},
		{pixel.I32, 4},
		{pixel.F32, 4},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.BytesPerPixel(); got != tt.want {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChannels(t *testing.T) {
	tests := []struct {
		kind pixel.Kind
		want int
	}{
		{pixel.U8, 1},
		{pixel.U16, 1},
		{pixel.I32, 1},
		{pixel.F32, 1},
		{pixel.U8x3, 3},
		{pixel.U16x3, 3},
		{pixel.U8x4, 4},
		{pixel.U16x4, 4},
	}
	for _, tt := range tests {
		if got := tt.kind.Channels(); got != tt.want {
			t.Errorf("%v.Channels() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestIntegerAndMaxComponentValue(t *testing.T) {
	integerKinds := []pixel.Kind{pixel.U8, pixel.U8x3, pixel.U8x4, pixel.U16, pixel.U16x3, pixel.U16x4}
	for _, k := range integerKinds {
		if !k.Integer() {
			t.Errorf("%v.Integer() = false, want true", k)
		}
	}
	if pixel.F32.Integer() || pixel.I32.Integer() {
		t.Errorf("F32/I32 must not report Integer() == true")
	}

	if pixel.U8.MaxComponentValue() != 0xff {
		t.Errorf("U8 max = %d, want 255", pixel.U8.MaxComponentValue())
	}
	if pixel.U16.MaxComponentValue() != 0xffff {
		t.Errorf("U16 max = %d, want 65535", pixel.U16.MaxComponentValue())
	}
}

func TestMaxComponentValuePanicsForFloat(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for F32.MaxComponentValue()")
		}
	}()
	pixel.F32.MaxComponentValue()
}

func TestString(t *testing.T) {
	if got := pixel.U8x4.String(); got != "U8x4" {
		t.Errorf("String() = %q, want %q", got, "U8x4")
	}
}
