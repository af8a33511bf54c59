// Package cpubackend detects the SIMD feature set available on the running
// CPU and exposes a process-wide cap that callers can use to bound which
// convolution kernel backend the engine is allowed to dispatch to.
package cpubackend

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sys/cpu"

	"github.com/naisuuuu/fresize/convolution"
)

// Backend names the SIMD feature levels the engine can target. It mirrors
// convolution.Backend but lives in its own package since detection happens
// independently of any single resize call.
type Backend int

const (
	// None requests the portable scalar kernels only.
	None Backend = iota
	// SSE41 requests SSE4.1-grouped kernels, falling back to scalar for
	// pixel kinds without an SSE4.1 entry.
	SSE41
	// AVX2 requests AVX2-grouped kernels, falling back through SSE4.1 to
	// scalar.
	AVX2
)

func (b Backend) String() string {
	switch b {
	case None:
		return "none"
	case SSE41:
		return "sse4.1"
	case AVX2:
		return "avx2"
	default:
		return "unknown"
	}
}

// ToKernelBackend maps a cpubackend.Backend onto the convolution package's
// own Backend enum, which the dispatch tables are keyed on.
func (b Backend) ToKernelBackend() convolution.Backend {
	switch b {
	case AVX2:
		return convolution.BackendAVX2
	case SSE41:
		return convolution.BackendSSE41
	default:
		return convolution.BackendScalar
	}
}

// detected is the highest backend the running CPU actually supports,
// established once at package init and never re-checked.
var detected Backend

// backendCap is the process-wide backend ceiling; Ceiling never returns
// higher than this even if detected supports more. Set via SetCap.
var backendCap int32 // atomic, holds a Backend value

func init() {
	switch {
	case cpu.X86.HasAVX2:
		detected = AVX2
	case cpu.X86.HasSSE41:
		detected = SSE41
	default:
		detected = None
	}
	atomic.StoreInt32(&backendCap, int32(detected))

	zlog.Debug().
		Str("backend", detected.String()).
		Bool("avx2", cpu.X86.HasAVX2).
		Bool("sse4.1", cpu.X86.HasSSE41).
		Msg("cpubackend: detected SIMD feature level")
}

// Detected returns the highest backend the CPU was found to support at
// process start. It never changes at runtime.
func Detected() Backend {
	return detected
}

// SetCap caps the process-wide backend ceiling to at most b, regardless of
// what Detected reports. This is unsafe in the sense that the caller
// asserts the CPU actually supports b, and there is no runtime re-check.
// Passing a backend higher than Detected silently has no effect beyond what
// Detected already allows, since Ceiling always takes the minimum of the
// two.
func SetCap(b Backend) {
	atomic.StoreInt32(&backendCap, int32(b))
	zlog.Debug().Str("cap", b.String()).Msg("cpubackend: backend cap changed")
}

// Ceiling returns the effective backend ceiling: the lower of the detected
// CPU support level and any cap installed via SetCap.
func Ceiling() Backend {
	c := Backend(atomic.LoadInt32(&backendCap))
	if c < detected {
		return c
	}
	return detected
}

// SetLevel configures zerolog's global level, which governs log lines
// written after the call, such as SetCap's. The detection log line is
// written by the package's init(), which has already run by the time any
// caller can call SetLevel, so it is not affected.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
