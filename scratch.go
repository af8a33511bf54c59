package fresize

import (
	"github.com/naisuuuu/fresize/pixel"
	"github.com/naisuuuu/fresize/view"
)

// scratchBuf caches one intermediate image's backing buffer across Resize
// calls, growing it monotonically and never shrinking it, to amortize
// allocation across repeated resizes of similar dimensions. It is not safe
// for concurrent use; a Resizer (and its scratchBufs) should not be shared
// across goroutines.
type scratchBuf struct {
	buf []byte
}

// acquire returns an Image of the given dimensions and kind, backed by the
// cached buffer, growing it first if it is too small. Buffer contents are
// not zeroed between acquisitions; callers must overwrite every pixel
// before reading, which every convolution and nearest-neighbor pass here
// does by construction (every destination pixel is written exactly once).
func (s *scratchBuf) acquire(width, height int, kind pixel.Kind) *view.Image {
	need := width * height * kind.BytesPerPixel()
	if len(s.buf) < need {
		s.buf = make([]byte, need)
	}
	img, err := view.FromBytes(width, height, kind, s.buf)
	if err != nil {
		panic(err)
	}
	return img
}
