package convolution

import "github.com/naisuuuu/fresize/view"

// HorizontalU16Scalar is the reference horizontal convolution kernel for
// the single-channel 16-bit pixel kind.
func HorizontalU16Scalar(src view.View, dst view.ViewMut, offset int, coeffs Coefficients, guard NormalizerGuard16) {
	convolveHorizontalIntScalar(src, dst, offset, coeffs, guard, u16Accessor)
}

// HorizontalU16SSE41 groups destination rows in fours and folds taps in
// 8-wide chunks; see convolveHorizontalIntGrouped and accumulateSSE41.
func HorizontalU16SSE41(src view.View, dst view.ViewMut, offset int, coeffs Coefficients, guard NormalizerGuard16) {
	convolveHorizontalIntSSE41(src, dst, offset, coeffs, guard, u16Accessor)
}

// HorizontalU16AVX2 groups destination rows in fours and folds taps in
// 16-wide chunks; see convolveHorizontalIntGrouped and accumulateAVX2.
func HorizontalU16AVX2(src view.View, dst view.ViewMut, offset int, coeffs Coefficients, guard NormalizerGuard16) {
	convolveHorizontalIntAVX2(src, dst, offset, coeffs, guard, u16Accessor)
}

// VerticalU16Scalar is the reference vertical convolution kernel for the
// single-channel 16-bit pixel kind.
func VerticalU16Scalar(src view.View, dst view.ViewMut, coeffs Coefficients, guard NormalizerGuard16) {
	convolveVerticalIntScalar(src, dst, coeffs, guard, u16Accessor, dst.Width())
}

// VerticalU16SSE41 streams four destination columns at a time, folding
// taps in 8-wide chunks; see convolveVerticalIntGrouped and
// accumulateSSE41.
func VerticalU16SSE41(src view.View, dst view.ViewMut, coeffs Coefficients, guard NormalizerGuard16) {
	convolveVerticalIntSSE41(src, dst, coeffs, guard, u16Accessor, dst.Width())
}

// VerticalU16AVX2 streams four destination columns at a time, folding taps
// in 16-wide chunks; see convolveVerticalIntGrouped and accumulateAVX2.
func VerticalU16AVX2(src view.View, dst view.ViewMut, coeffs Coefficients, guard NormalizerGuard16) {
	convolveVerticalIntAVX2(src, dst, coeffs, guard, u16Accessor, dst.Width())
}
