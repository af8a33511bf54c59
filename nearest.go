package fresize

import (
	"math"

	"github.com/naisuuuu/fresize/view"
)

// nearestIndex maps destination index j (of dstLen samples covering srcLen
// source samples) to its source index: floor((j+0.5)*s), clamped to
// [0, srcLen).
func nearestIndex(j, srcLen, dstLen int) int {
	s := float64(srcLen) / float64(dstLen)
	i := int(math.Floor((float64(j) + 0.5) * s))
	if i < 0 {
		i = 0
	}
	if i >= srcLen {
		i = srcLen - 1
	}
	return i
}

// nearestResize writes dst by nearest-neighbor sampling src along both axes.
// No coefficients, no normalizer.
func nearestResize(src view.View, dst view.ViewMut) {
	srcW, srcH := src.Width(), src.Height()
	dstW, dstH := dst.Width(), dst.Height()
	bpp := src.Kind().BytesPerPixel()

	srcXs := make([]int, dstW)
	for x := range srcXs {
		srcXs[x] = nearestIndex(x, srcW, dstW)
	}

	for y := 0; y < dstH; y++ {
		srcRow := src.Row(nearestIndex(y, srcH, dstH))
		dstRow := dst.RowMut(y)
		for x, sx := range srcXs {
			copy(dstRow[x*bpp:(x+1)*bpp], srcRow[sx*bpp:(sx+1)*bpp])
		}
	}
}
