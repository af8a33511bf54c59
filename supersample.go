package fresize

import "github.com/naisuuuu/fresize/view"

// superSamplingResize first downscales src by nearest neighbor to
// (k*dstW, k*dstH) capped at the source size, then convolves with f to the
// final destination size: a small quality loss traded for substantial
// speedup when src is very large relative to dst.
func (r *Resizer) superSamplingResize(src view.View, dst view.ViewMut, f FilterKind, k uint8) {
	dstW, dstH := dst.Width(), dst.Height()

	midW := int(k) * dstW
	if midW > src.Width() {
		midW = src.Width()
	}
	midH := int(k) * dstH
	if midH > src.Height() {
		midH = src.Height()
	}

	if midW == src.Width() && midH == src.Height() {
		r.convolutionResize(src, dst, f)
		return
	}

	stage := r.stage.acquire(midW, midH, src.Kind())
	nearestResize(src, stage.ViewMut())
	r.convolutionResize(stage.View(), dst, f)
}
