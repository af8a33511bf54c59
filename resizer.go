package fresize

import (
	"github.com/naisuuuu/fresize/convolution"
	"github.com/naisuuuu/fresize/cpubackend"
	"github.com/naisuuuu/fresize/filter"
	"github.com/naisuuuu/fresize/pixel"
	"github.com/naisuuuu/fresize/view"
)

// FilterKind names a reconstruction filter a Convolution or SuperSampling
// algorithm applies. It is the filter package's Kind, re-exported here so
// callers commonly need only import this package.
type FilterKind = filter.Kind

// Named filter kinds, re-exported from the filter package.
const (
	Box        = filter.Box
	Bilinear   = filter.Bilinear
	Hamming    = filter.Hamming
	Mitchell   = filter.Mitchell
	CatmullRom = filter.CatmullRom
	Lanczos3   = filter.Lanczos3
)

// CPUBackend names a SIMD feature level a Resizer's convolution kernels may
// target. It is cpubackend.Backend, re-exported here for convenience.
type CPUBackend = cpubackend.Backend

// Named CPU backends, re-exported from the cpubackend package.
const (
	CPUBackendNone  = cpubackend.None
	CPUBackendSSE41 = cpubackend.SSE41
	CPUBackendAVX2  = cpubackend.AVX2
)

// algKind tags which resampling strategy a ResizeAlg selects.
type algKind uint8

const (
	algNearest algKind = iota
	algConvolution
	algSuperSampling
)

// ResizeAlg selects a Resizer's resampling strategy. Construct one with
// Nearest, Convolution or SuperSampling.
type ResizeAlg struct {
	kind   algKind
	filter FilterKind
	factor uint8
}

// Nearest selects nearest-neighbor resampling: no filter, no normalizer.
func Nearest() ResizeAlg {
	return ResizeAlg{kind: algNearest}
}

// Convolution selects single-stage separable convolution with f.
func Convolution(f FilterKind) ResizeAlg {
	return ResizeAlg{kind: algConvolution, filter: f}
}

// SuperSampling selects a two-stage resize: nearest-neighbor down to k
// times the destination size (capped at the source size), then convolution
// with f to the final size. k must be >= 2; this is a programmer error
// (panics) otherwise.
func SuperSampling(f FilterKind, k uint8) ResizeAlg {
	if k < 2 {
		panic("fresize: SuperSampling factor k must be >= 2")
	}
	return ResizeAlg{kind: algSuperSampling, filter: f, factor: k}
}

// Resizer runs one configured ResizeAlg repeatedly, caching an intermediate
// scratch image across calls. It is not safe for concurrent use; construct
// one Resizer per goroutine that needs to resize in parallel.
type Resizer struct {
	alg     ResizeAlg
	backend convolution.Backend

	// scratch holds the intermediate image between a convolution resize's
	// two axis passes. stage holds the nearest-neighbor downscale target
	// for SuperSampling, which is itself fed into a convolution resize (and
	// so into scratch) as its source.
	scratch scratchBuf
	stage   scratchBuf
}

// NewResizer returns a Resizer configured to run alg. Its CPU backend
// starts at the process-wide detected ceiling (see cpubackend.Ceiling);
// call SetCPUBackend to override it.
func NewResizer(alg ResizeAlg) *Resizer {
	return &Resizer{
		alg:     alg,
		backend: cpubackend.Ceiling().ToKernelBackend(),
	}
}

// SetCPUBackend caps this Resizer's SIMD backend to b. Like
// cpubackend.SetCap, this is unsafe: the caller asserts the running CPU
// actually supports b; there is no runtime re-check.
func (r *Resizer) SetCPUBackend(b CPUBackend) {
	r.backend = b.ToKernelBackend()
}

// Resize writes into dst the result of running r's configured algorithm
// over src. It returns ErrDifferentPixelKinds if src and dst do not share a
// pixel kind; every other contract violation (aliased views, zero-size
// views) is a programmer error and is not reported through the error
// return.
func (r *Resizer) Resize(src view.View, dst view.ViewMut) error {
	if src.Kind() != dst.Kind() {
		return ErrDifferentPixelKinds
	}

	switch r.alg.kind {
	case algNearest:
		nearestResize(src, dst)
	case algConvolution:
		r.convolutionResize(src, dst, r.alg.filter)
	case algSuperSampling:
		r.superSamplingResize(src, dst, r.alg.filter, r.alg.factor)
	default:
		panic("fresize: unreachable ResizeAlg kind")
	}
	return nil
}

// convolutionResize runs the separable two-pass convolution: the axis that
// shrinks the total pixel count most runs first, to minimize the size of
// the intermediate buffer and the total multiply-adds. When only one axis
// actually changes size, the other pass is skipped outright rather than run
// as a no-op identity convolution.
func (r *Resizer) convolutionResize(src view.View, dst view.ViewMut, f FilterKind) {
	srcW, srcH := src.Width(), src.Height()
	dstW, dstH := dst.Width(), dst.Height()
	kind := src.Kind()
	fl := filter.New(f)

	if srcW == dstW {
		convolveAxis(src, dst, srcH, dstH, fl, kind, r.backend, convolution.Vertical)
		return
	}
	if srcH == dstH {
		convolveAxis(src, dst, srcW, dstW, fl, kind, r.backend, convolution.Horizontal)
		return
	}

	if dstW*srcH < dstH*srcW {
		mid := r.scratch.acquire(dstW, srcH, kind)
		convolveAxis(src, mid.ViewMut(), srcW, dstW, fl, kind, r.backend, convolution.Horizontal)
		convolveAxis(mid.View(), dst, srcH, dstH, fl, kind, r.backend, convolution.Vertical)
	} else {
		mid := r.scratch.acquire(srcW, dstH, kind)
		convolveAxis(src, mid.ViewMut(), srcH, dstH, fl, kind, r.backend, convolution.Vertical)
		convolveAxis(mid.View(), dst, srcW, dstW, fl, kind, r.backend, convolution.Horizontal)
	}
}

// convolveAxis builds Coefficients for one axis and runs the appropriate
// dispatched kernel, handling the integer (fixed-point, saturating) and
// float (direct f64 accumulation) pixel kinds uniformly.
func convolveAxis(src view.View, dst view.ViewMut, srcLen, dstLen int, f filter.Filter, kind pixel.Kind, backend convolution.Backend, dir convolution.Direction) {
	coeffs := convolution.Build(srcLen, dstLen, f)

	if kind.Integer() {
		guard := convolution.NewNormalizerGuard16(coeffs.Values, coeffs.WindowSize, kind.MaxComponentValue())
		switch dir {
		case convolution.Horizontal:
			kernel, _ := convolution.DispatchHorizontal(kind, backend)
			kernel(src, dst, 0, coeffs, guard)
		case convolution.Vertical:
			kernel, _ := convolution.DispatchVertical(kind, backend)
			kernel(src, dst, coeffs, guard)
		}
		return
	}

	switch dir {
	case convolution.Horizontal:
		kernel := convolution.DispatchHorizontalFloat(kind)
		kernel(src, dst, 0, coeffs)
	case convolution.Vertical:
		kernel := convolution.DispatchVerticalFloat(kind)
		kernel(src, dst, coeffs)
	}
}
