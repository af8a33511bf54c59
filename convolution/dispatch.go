package convolution

import (
	"fmt"

	"github.com/naisuuuu/fresize/pixel"
	"github.com/naisuuuu/fresize/view"
)

// HorizontalIntKernel is the shape of every integer pixel kind's horizontal
// convolution kernel.
type HorizontalIntKernel func(src view.View, dst view.ViewMut, offset int, coeffs Coefficients, guard NormalizerGuard16)

// VerticalIntKernel is the shape of every integer pixel kind's vertical
// convolution kernel.
type VerticalIntKernel func(src view.View, dst view.ViewMut, coeffs Coefficients, guard NormalizerGuard16)

// HorizontalFloatKernel is the shape of the (scalar-only) F32/I32 horizontal
// convolution kernel.
type HorizontalFloatKernel func(src view.View, dst view.ViewMut, offset int, coeffs Coefficients)

// VerticalFloatKernel is the shape of the (scalar-only) F32/I32 vertical
// convolution kernel.
type VerticalFloatKernel func(src view.View, dst view.ViewMut, coeffs Coefficients)

var horizontalIntKernels = map[pixel.Kind]map[Backend]HorizontalIntKernel{
	pixel.U8: {
		BackendScalar: HorizontalU8Scalar,
		BackendSSE41:  HorizontalU8SSE41,
		BackendAVX2:   HorizontalU8AVX2,
	},
	pixel.U8x3: {
		BackendScalar: HorizontalU8x3Scalar,
		BackendSSE41:  HorizontalU8x3SSE41,
		BackendAVX2:   HorizontalU8x3AVX2,
	},
	pixel.U8x4: {
		BackendScalar: HorizontalU8x4Scalar,
		BackendSSE41:  HorizontalU8x4SSE41,
		BackendAVX2:   HorizontalU8x4AVX2,
	},
	pixel.U16: {
		BackendScalar: HorizontalU16Scalar,
		BackendSSE41:  HorizontalU16SSE41,
		BackendAVX2:   HorizontalU16AVX2,
	},
	pixel.U16x3: {
		BackendScalar: HorizontalU16x3Scalar,
		BackendSSE41:  HorizontalU16x3SSE41,
		BackendAVX2:   HorizontalU16x3AVX2,
	},
	pixel.U16x4: {
		BackendScalar: HorizontalU16x4Scalar,
		BackendSSE41:  HorizontalU16x4SSE41,
		BackendAVX2:   HorizontalU16x4AVX2,
	},
}

var verticalIntKernels = map[pixel.Kind]map[Backend]VerticalIntKernel{
	pixel.U8: {
		BackendScalar: VerticalU8Scalar,
		BackendSSE41:  VerticalU8SSE41,
		BackendAVX2:   VerticalU8AVX2,
	},
	pixel.U8x3: {
		BackendScalar: VerticalU8x3Scalar,
		BackendSSE41:  VerticalU8x3SSE41,
		BackendAVX2:   VerticalU8x3AVX2,
	},
	pixel.U8x4: {
		BackendScalar: VerticalU8x4Scalar,
		BackendSSE41:  VerticalU8x4SSE41,
		BackendAVX2:   VerticalU8x4AVX2,
	},
	pixel.U16: {
		BackendScalar: VerticalU16Scalar,
		BackendSSE41:  VerticalU16SSE41,
		BackendAVX2:   VerticalU16AVX2,
	},
	pixel.U16x3: {
		BackendScalar: VerticalU16x3Scalar,
		BackendSSE41:  VerticalU16x3SSE41,
		BackendAVX2:   VerticalU16x3AVX2,
	},
	pixel.U16x4: {
		BackendScalar: VerticalU16x4Scalar,
		BackendSSE41:  VerticalU16x4SSE41,
		BackendAVX2:   VerticalU16x4AVX2,
	},
}

// fallbackChain walks from a requested backend down towards Scalar, which is
// always present: if the requested backend has no kernel for a given pixel
// kind, dispatch falls back to the next-lower backend down to scalar.
func fallbackChain(requested Backend) []Backend {
	switch requested {
	case BackendAVX2:
		return []Backend{BackendAVX2, BackendSSE41, BackendScalar}
	case BackendSSE41:
		return []Backend{BackendSSE41, BackendScalar}
	default:
		return []Backend{BackendScalar}
	}
}

// DispatchHorizontal returns the horizontal kernel for kind at the highest
// backend not exceeding requested that has an entry, along with the backend
// it actually selected. It panics for F32/I32, which use
// DispatchHorizontalFloat instead.
func DispatchHorizontal(kind pixel.Kind, requested Backend) (HorizontalIntKernel, Backend) {
	kinds, ok := horizontalIntKernels[kind]
	if !ok {
		panic(fmt.Sprintf("convolution: %v has no integer horizontal kernel table; use DispatchHorizontalFloat", kind))
	}
	for _, b := range fallbackChain(requested) {
		if fn, ok := kinds[b]; ok {
			return fn, b
		}
	}
	panic(fmt.Sprintf("convolution: no scalar horizontal kernel registered for %v", kind))
}

// DispatchVertical returns the vertical kernel for kind at the highest
// backend not exceeding requested that has an entry, along with the backend
// it actually selected. It panics for F32/I32, which use
// DispatchVerticalFloat instead.
func DispatchVertical(kind pixel.Kind, requested Backend) (VerticalIntKernel, Backend) {
	kinds, ok := verticalIntKernels[kind]
	if !ok {
		panic(fmt.Sprintf("convolution: %v has no integer vertical kernel table; use DispatchVerticalFloat", kind))
	}
	for _, b := range fallbackChain(requested) {
		if fn, ok := kinds[b]; ok {
			return fn, b
		}
	}
	panic(fmt.Sprintf("convolution: no scalar vertical kernel registered for %v", kind))
}

// DispatchHorizontalFloat returns the scalar horizontal kernel for F32 or
// I32; these kinds have no SIMD backend, scalar is their only kernel.
func DispatchHorizontalFloat(kind pixel.Kind) HorizontalFloatKernel {
	switch kind {
	case pixel.F32:
		return HorizontalF32Scalar
	case pixel.I32:
		return HorizontalI32Scalar
	default:
		panic(fmt.Sprintf("convolution: %v is not a float-kernel pixel kind", kind))
	}
}

// DispatchVerticalFloat returns the scalar vertical kernel for F32 or I32.
func DispatchVerticalFloat(kind pixel.Kind) VerticalFloatKernel {
	switch kind {
	case pixel.F32:
		return VerticalF32Scalar
	case pixel.I32:
		return VerticalI32Scalar
	default:
		panic(fmt.Sprintf("convolution: %v is not a float-kernel pixel kind", kind))
	}
}
