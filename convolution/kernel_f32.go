package convolution

import (
	"encoding/binary"
	"math"

	"github.com/naisuuuu/fresize/view"
)

func loadF32(row []byte, i int) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(row[i*4:])))
}

func storeF32(row []byte, i int, v float64) {
	binary.LittleEndian.PutUint32(row[i*4:], math.Float32bits(float32(v)))
}

// HorizontalF32Scalar is the only backend for the 32-bit float pixel kind;
// it has no SIMD counterpart. Accumulation happens in float64 and is
// rounded to the nearest float32 on store; there is no fixed-point
// normalizer and no saturation, since float components carry their own
// range.
func HorizontalF32Scalar(src view.View, dst view.ViewMut, offset int, coeffs Coefficients) {
	chunks := f64Chunks(coeffs)
	bounds := coeffs.Bounds
	for y := 0; y < dst.Height(); y++ {
		srcRow := src.Row(y + offset)
		dstRow := dst.RowMut(y)
		for x, taps := range chunks {
			start := int(bounds[x].Start)
			var sum float64
			for i, k := range taps {
				sum += loadF32(srcRow, start+i) * k
			}
			storeF32(dstRow, x, sum)
		}
	}
}

// VerticalF32Scalar is the only backend for the 32-bit float pixel kind; see
// HorizontalF32Scalar.
func VerticalF32Scalar(src view.View, dst view.ViewMut, coeffs Coefficients) {
	chunks := f64Chunks(coeffs)
	bounds := coeffs.Bounds
	width := dst.Width()
	for y, taps := range chunks {
		start := int(bounds[y].Start)
		dstRow := dst.RowMut(y)
		for x := 0; x < width; x++ {
			var sum float64
			for i, k := range taps {
				sum += loadF32(src.Row(start+i), x) * k
			}
			storeF32(dstRow, x, sum)
		}
	}
}
