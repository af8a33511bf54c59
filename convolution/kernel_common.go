package convolution

import (
	"encoding/binary"
	"math"

	"github.com/naisuuuu/fresize/view"
)

// Backend identifies which implementation strategy a kernel function uses.
// It exists purely to label dispatch-table entries (see dispatch.go); every
// backend for a given (pixel kind, direction) pair computes byte-for-byte
// identical output regardless of the internal chunking it uses to get there.
type Backend uint8

const (
	// BackendScalar is the portable reference implementation, always
	// present for every pixel kind and direction.
	BackendScalar Backend = iota
	// BackendSSE41 processes taps in 8-wide madd-style chunks (four i32
	// partial sums folded at the end) and groups four rows/columns at a
	// time, the way a 128-bit vector kernel would.
	BackendSSE41
	// BackendAVX2 processes taps in 16-wide chunks (eight i32 partials),
	// falling back to the 8-wide tier for any remainder that doesn't fill
	// a full 16-wide chunk, the way a 256-bit vector kernel would.
	BackendAVX2
)

func (b Backend) String() string {
	switch b {
	case BackendScalar:
		return "scalar"
	case BackendSSE41:
		return "sse4.1"
	case BackendAVX2:
		return "avx2"
	default:
		return "unknown"
	}
}

// Direction identifies which axis a convolution pass resamples.
type Direction uint8

const (
	// Horizontal passes iterate rows independently, convolving along
	// columns.
	Horizontal Direction = iota
	// Vertical passes iterate destination rows, convolving down columns.
	Vertical
)

// i16Chunk is a coefficient row quantized to fixed-point, alongside the
// source index its window starts at. The window is trimmed to its real
// Bounds[i].Size: Coefficients pads every row to WindowSize so the build step
// can store them as one flat slice, but kernels only need the taps that are
// actually nonzero.
type i16Chunk struct {
	start int
	taps  []int16
}

// quantizeChunks converts every destination sample's coefficient row to
// fixed point once, up front, so that horizontal passes (which reuse the
// same per-column taps across every row) and vertical passes (which reuse
// the same per-row taps across every column) don't re-derive them.
func quantizeChunks(coeffs Coefficients, guard NormalizerGuard16) []i16Chunk {
	chunks := make([]i16Chunk, coeffs.Len())
	for i := 0; i < coeffs.Len(); i++ {
		b := coeffs.Bounds[i]
		full := guard.QuantizeRow(coeffs.Chunk(i))
		chunks[i] = i16Chunk{start: int(b.Start), taps: full[:b.Size]}
	}
	return chunks
}

// rowGroups4 partitions [0, n) into contiguous groups of four followed by a
// (possibly empty) remainder.
func rowGroups4(n int) (groups int, tailStart int) {
	groups = n / 4
	tailStart = groups * 4
	return groups, tailStart
}

// f64Chunks returns the float coefficient rows trimmed to their real
// Bounds[i].Size, for the non-integer (F32) kernels, which accumulate in
// float64 and never quantize to fixed point.
func f64Chunks(coeffs Coefficients) [][]float64 {
	chunks := make([][]float64, coeffs.Len())
	for i := 0; i < coeffs.Len(); i++ {
		chunks[i] = coeffs.Chunk(i)[:coeffs.Bounds[i].Size]
	}
	return chunks
}

func roundFloat64ToInt32(v float64) int32 {
	return int32(math.Round(v))
}

func fullRange(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}

// pixelAccessor abstracts reading and writing one channel of one pixel for
// an integer pixel kind, so the convolution core below is written once and
// shared by U8, U8x3, U8x4, U16, U16x3 and U16x4 rather than duplicated six
// times. Each kind's package-level kernel functions (kernel_u8.go etc.) are
// still the monomorphic entry points the dispatch table holds; this is
// strictly an internal code-sharing detail.
type pixelAccessor struct {
	channels int
	load     func(row []byte, pixelIdx, ch int) int32
	store    func(row []byte, pixelIdx, ch int, v uint32)
}

var u8Accessor = pixelAccessor{
	channels: 1,
	load:     func(row []byte, p, ch int) int32 { return int32(row[p]) },
	store:    func(row []byte, p, ch int, v uint32) { row[p] = byte(v) },
}

var u8x3Accessor = pixelAccessor{
	channels: 3,
	load:     func(row []byte, p, ch int) int32 { return int32(row[p*3+ch]) },
	store:    func(row []byte, p, ch int, v uint32) { row[p*3+ch] = byte(v) },
}

var u8x4Accessor = pixelAccessor{
	channels: 4,
	load:     func(row []byte, p, ch int) int32 { return int32(row[p*4+ch]) },
	store:    func(row []byte, p, ch int, v uint32) { row[p*4+ch] = byte(v) },
}

var u16Accessor = pixelAccessor{
	channels: 1,
	load:     func(row []byte, p, ch int) int32 { return int32(binary.LittleEndian.Uint16(row[p*2:])) },
	store:    func(row []byte, p, ch int, v uint32) { binary.LittleEndian.PutUint16(row[p*2:], uint16(v)) },
}

var u16x3Accessor = pixelAccessor{
	channels: 3,
	load: func(row []byte, p, ch int) int32 {
		i := (p*3 + ch) * 2
		return int32(binary.LittleEndian.Uint16(row[i:]))
	},
	store: func(row []byte, p, ch int, v uint32) {
		i := (p*3 + ch) * 2
		binary.LittleEndian.PutUint16(row[i:], uint16(v))
	},
}

var u16x4Accessor = pixelAccessor{
	channels: 4,
	load: func(row []byte, p, ch int) int32 {
		i := (p*4 + ch) * 2
		return int32(binary.LittleEndian.Uint16(row[i:]))
	},
	store: func(row []byte, p, ch int, v uint32) {
		i := (p*4 + ch) * 2
		binary.LittleEndian.PutUint16(row[i:], uint16(v))
	},
}

// tapAccumulator sums taps[i]*load(i) for i in [0, len(taps)), seeded with
// bias, using whatever lane-grouping a backend wants. Every implementation
// must return the same int32 a plain left-to-right accumulation would,
// since Clip is applied to the result identically across backends.
type tapAccumulator func(bias int32, guard NormalizerGuard16, taps []int16, load func(i int) int32) int32

// accumulateScalar is the reference accumulator: one multiply-add per tap,
// bias pre-loaded once.
func accumulateScalar(bias int32, guard NormalizerGuard16, taps []int16, load func(i int) int32) int32 {
	sum := bias
	for i, k := range taps {
		sum += load(i) * int32(k)
	}
	return sum
}

// seedLanes splits bias across lanes independent accumulators using
// BiasPerLane, with lane 0 absorbing the remainder BiasPerLane's integer
// division drops, so the lanes sum to exactly bias once folded back
// together.
func seedLanes(bias int32, guard NormalizerGuard16, lanes int) []int32 {
	partials := make([]int32, lanes)
	per := guard.BiasPerLane(lanes)
	for l := range partials {
		partials[l] = per
	}
	partials[0] += bias - int32(lanes)*per
	return partials
}

// accumulatePairs folds taps[i:] in chunks of 2*lanes, two taps per lane per
// chunk, the way a packed multiply-add instruction reduces 2*lanes
// i16-products to lanes i32 partials in one step. Any taps beyond the last
// full chunk are folded one at a time into partials[0]. Returns the index
// past the last tap consumed.
func accumulatePairs(partials []int32, taps []int16, i int, load func(j int) int32) int {
	lanes := len(partials)
	chunk := lanes * 2
	for ; i+chunk <= len(taps); i += chunk {
		for l := 0; l < lanes; l++ {
			a := int32(taps[i+2*l]) * load(i+2*l)
			b := int32(taps[i+2*l+1]) * load(i+2*l+1)
			partials[l] += a + b
		}
	}
	for ; i < len(taps); i++ {
		partials[0] += int32(taps[i]) * load(i)
	}
	return i
}

func sumLanes(partials []int32) int32 {
	var sum int32
	for _, p := range partials {
		sum += p
	}
	return sum
}

// accumulateSSE41 processes taps in one 8-wide chunk tier (four folded
// partials), matching a 128-bit register holding eight i16 lanes.
func accumulateSSE41(bias int32, guard NormalizerGuard16, taps []int16, load func(i int) int32) int32 {
	partials := seedLanes(bias, guard, 4)
	accumulatePairs(partials, taps, 0, load)
	return sumLanes(partials)
}

// accumulateAVX2 processes taps in a 16-wide chunk tier (eight folded
// partials) first, then falls back to the 8-wide tier for whatever doesn't
// fill a full 16-wide chunk, matching a 256-bit register's double width
// over SSE4.1's 128-bit one.
func accumulateAVX2(bias int32, guard NormalizerGuard16, taps []int16, load func(i int) int32) int32 {
	wide := seedLanes(bias, guard, 8)
	full := len(taps) - len(taps)%16
	i := accumulatePairs(wide, taps[:full], 0, load)
	if i >= len(taps) {
		return sumLanes(wide)
	}
	narrow := wide[:4]
	accumulatePairs(narrow, taps, i, load)
	return sumLanes(wide)
}

// convolveHorizontalIntRow applies chunks (one per destination column)
// along a single already-fetched source/destination row pair, using
// accumulate to sum each output sample's taps. It is the single per-row
// core every integer horizontal kernel (Scalar, SSE4.1, AVX2) calls; only
// the row-grouping strategy and accumulate function differ between
// backends.
func convolveHorizontalIntRow(srcRow, dstRow []byte, chunks []i16Chunk, guard NormalizerGuard16, acc pixelAccessor, accumulate tapAccumulator) {
	bias := guard.Bias()
	for x, c := range chunks {
		for ch := 0; ch < acc.channels; ch++ {
			load := func(i int) int32 { return acc.load(srcRow, c.start+i, ch) }
			sum := accumulate(bias, guard, c.taps, load)
			acc.store(dstRow, x, ch, guard.Clip(sum))
		}
	}
}

func convolveHorizontalIntScalar(src view.View, dst view.ViewMut, offset int, coeffs Coefficients, guard NormalizerGuard16, acc pixelAccessor) {
	chunks := quantizeChunks(coeffs, guard)
	for y := 0; y < dst.Height(); y++ {
		convolveHorizontalIntRow(src.Row(y+offset), dst.RowMut(y), chunks, guard, acc, accumulateScalar)
	}
}

// convolveHorizontalIntGrouped processes destination rows four at a time
// via view.Rows4/Rows4Mut, amortizing the row-fetch overhead the way a
// vector kernel amortizes a strip of rows between register loads; any
// trailing rows short of a full group of four fall back to the single-row
// path. accumulate supplies the backend-specific tap-chunking.
func convolveHorizontalIntGrouped(src view.View, dst view.ViewMut, offset int, coeffs Coefficients, guard NormalizerGuard16, acc pixelAccessor, accumulate tapAccumulator) {
	chunks := quantizeChunks(coeffs, guard)
	height := dst.Height()
	y := 0
	for ; y+4 <= height; y += 4 {
		r0, r1, r2, r3, ok := src.Rows4(y + offset)
		if !ok {
			break
		}
		d0, d1, d2, d3, ok := dst.Rows4Mut(y)
		if !ok {
			break
		}
		convolveHorizontalIntRow(r0, d0, chunks, guard, acc, accumulate)
		convolveHorizontalIntRow(r1, d1, chunks, guard, acc, accumulate)
		convolveHorizontalIntRow(r2, d2, chunks, guard, acc, accumulate)
		convolveHorizontalIntRow(r3, d3, chunks, guard, acc, accumulate)
	}
	for ; y < height; y++ {
		convolveHorizontalIntRow(src.Row(y+offset), dst.RowMut(y), chunks, guard, acc, accumulate)
	}
}

func convolveHorizontalIntSSE41(src view.View, dst view.ViewMut, offset int, coeffs Coefficients, guard NormalizerGuard16, acc pixelAccessor) {
	convolveHorizontalIntGrouped(src, dst, offset, coeffs, guard, acc, accumulateSSE41)
}

func convolveHorizontalIntAVX2(src view.View, dst view.ViewMut, offset int, coeffs Coefficients, guard NormalizerGuard16, acc pixelAccessor) {
	convolveHorizontalIntGrouped(src, dst, offset, coeffs, guard, acc, accumulateAVX2)
}

// convolveVerticalIntCols applies chunk (one per destination row) down
// columns, for the specific dst column indices in cols, using accumulate to
// sum each output sample's taps.
func convolveVerticalIntCols(src view.View, dst view.ViewMut, chunks []i16Chunk, guard NormalizerGuard16, acc pixelAccessor, cols []int, accumulate tapAccumulator) {
	bias := guard.Bias()
	for y, c := range chunks {
		dstRow := dst.RowMut(y)
		for _, x := range cols {
			for ch := 0; ch < acc.channels; ch++ {
				load := func(i int) int32 { return acc.load(src.Row(c.start+i), x, ch) }
				sum := accumulate(bias, guard, c.taps, load)
				acc.store(dstRow, x, ch, guard.Clip(sum))
			}
		}
	}
}

func convolveVerticalIntScalar(src view.View, dst view.ViewMut, coeffs Coefficients, guard NormalizerGuard16, acc pixelAccessor, width int) {
	chunks := quantizeChunks(coeffs, guard)
	convolveVerticalIntCols(src, dst, chunks, guard, acc, fullRange(width), accumulateScalar)
}

// convolveVerticalIntGrouped streams four destination columns at a time;
// tail columns (< 4 remaining) fall back to the single-column path.
// accumulate supplies the backend-specific tap-chunking.
func convolveVerticalIntGrouped(src view.View, dst view.ViewMut, coeffs Coefficients, guard NormalizerGuard16, acc pixelAccessor, width int, accumulate tapAccumulator) {
	chunks := quantizeChunks(coeffs, guard)
	groups, tail := rowGroups4(width)
	for g := 0; g < groups; g++ {
		x := g * 4
		convolveVerticalIntCols(src, dst, chunks, guard, acc, []int{x, x + 1, x + 2, x + 3}, accumulate)
	}
	for x := tail; x < width; x++ {
		convolveVerticalIntCols(src, dst, chunks, guard, acc, []int{x}, accumulate)
	}
}

func convolveVerticalIntSSE41(src view.View, dst view.ViewMut, coeffs Coefficients, guard NormalizerGuard16, acc pixelAccessor, width int) {
	convolveVerticalIntGrouped(src, dst, coeffs, guard, acc, width, accumulateSSE41)
}

func convolveVerticalIntAVX2(src view.View, dst view.ViewMut, coeffs Coefficients, guard NormalizerGuard16, acc pixelAccessor, width int) {
	convolveVerticalIntGrouped(src, dst, coeffs, guard, acc, width, accumulateAVX2)
}
