package convolution

import (
	"encoding/binary"
	"math"

	"github.com/naisuuuu/fresize/view"
)

func loadI32(row []byte, i int) float64 {
	return float64(int32(binary.LittleEndian.Uint32(row[i*4:])))
}

func storeI32(row []byte, i int, v float64) {
	binary.LittleEndian.PutUint32(row[i*4:], uint32(int32(math.Round(v))))
}

// HorizontalI32Scalar is the only backend for the 32-bit signed integer
// pixel kind; like F32, it has no SIMD counterpart. Accumulation is in
// float64 and rounded to the nearest int32 on store; there is no
// fixed-point normalizer for this kind, and overflow past the int32 range
// is a programmer error the kernel does not guard against.
func HorizontalI32Scalar(src view.View, dst view.ViewMut, offset int, coeffs Coefficients) {
	chunks := f64Chunks(coeffs)
	bounds := coeffs.Bounds
	for y := 0; y < dst.Height(); y++ {
		srcRow := src.Row(y + offset)
		dstRow := dst.RowMut(y)
		for x, taps := range chunks {
			start := int(bounds[x].Start)
			var sum float64
			for i, k := range taps {
				sum += loadI32(srcRow, start+i) * k
			}
			storeI32(dstRow, x, sum)
		}
	}
}

// VerticalI32Scalar is the only backend for the 32-bit signed integer pixel
// kind; see HorizontalI32Scalar.
func VerticalI32Scalar(src view.View, dst view.ViewMut, coeffs Coefficients) {
	chunks := f64Chunks(coeffs)
	bounds := coeffs.Bounds
	width := dst.Width()
	for y, taps := range chunks {
		start := int(bounds[y].Start)
		dstRow := dst.RowMut(y)
		for x := 0; x < width; x++ {
			var sum float64
			for i, k := range taps {
				sum += loadI32(src.Row(start+i), x) * k
			}
			storeI32(dstRow, x, sum)
		}
	}
}
