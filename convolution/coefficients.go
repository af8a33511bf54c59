// Package convolution implements the coefficient-precomputation,
// fixed-point normalization and per-pixel-kind kernels of the separable
// convolution resampling engine.
package convolution

import (
	"fmt"
	"math"

	"github.com/naisuuuu/fresize/filter"
)

// Bounds names, for one output sample, the half-open window [Start,
// Start+Size) of source samples that contribute to it.
type Bounds struct {
	Start uint32
	Size  uint32
}

// Coefficients holds the per-axis coefficient taps produced by Build: one
// row of WindowSize taps per destination sample, flattened, plus the source
// window each row targets.
type Coefficients struct {
	WindowSize int
	// Values is flat: len(Values) == len(Bounds)*WindowSize.
	Values []float64
	Bounds []Bounds
}

// Chunk returns destination sample i's coefficient row: WindowSize taps,
// zero-padded past Bounds[i].Size.
func (c Coefficients) Chunk(i int) []float64 {
	return c.Values[i*c.WindowSize : (i+1)*c.WindowSize]
}

// Len returns the number of destination samples this Coefficients covers.
func (c Coefficients) Len() int {
	return len(c.Bounds)
}

// Build computes the per-destination-sample filter taps and source windows
// for resampling one axis from srcLen samples to dstLen samples using f.
//
// srcLen and dstLen must both be >= 1; this is a programmer error (panics),
// not a recoverable one, since a View can never have zero width or height.
func Build(srcLen, dstLen int, f filter.Filter) Coefficients {
	if srcLen <= 0 || dstLen <= 0 {
		panic(fmt.Sprintf("convolution: src_len and dst_len must be positive, got %d, %d", srcLen, dstLen))
	}

	scale := float64(srcLen) / float64(dstLen)
	filterScale := math.Max(1, scale)
	support := f.Support * filterScale

	windowSize := ceilEven(support * 2)

	bounds := make([]Bounds, dstLen)
	values := make([]float64, dstLen*windowSize)

	for j := 0; j < dstLen; j++ {
		center := (float64(j)+0.5)*scale - 0.5

		left := int(math.Floor(center - support + 1))
		if left < 0 {
			left = 0
		}
		right := int(math.Floor(center+support)) + 1
		if right > srcLen {
			right = srcLen
		}
		if right < left {
			right = left
		}
		size := right - left

		row := values[j*windowSize : j*windowSize+windowSize]
		sum := 0.0
		for i := left; i < right; i++ {
			t := math.Abs(float64(i)-center) / filterScale
			w := f.At(t)
			row[i-left] = w
			sum += w
		}
		if sum != 0 {
			for i := 0; i < size; i++ {
				row[i] /= sum
			}
		}

		bounds[j] = Bounds{Start: uint32(left), Size: uint32(size)}
	}

	return Coefficients{WindowSize: windowSize, Values: values, Bounds: bounds}
}

// ceilEven returns the smallest even integer >= x.
func ceilEven(x float64) int {
	n := int(math.Ceil(x))
	if n%2 != 0 {
		n++
	}
	if n < 2 {
		n = 2
	}
	return n
}
