// Package fresize is a high-performance image resampling library. Given a
// source raster and a destination raster of (generally) different
// dimensions, it produces the destination by one of three algorithms:
// nearest-neighbor, separable convolution with a configurable reconstruction
// filter, or supersampling (a nearest-neighbor pre-pass followed by
// convolution).
//
// The engine operates on views (see the view package) over a closed set of
// pixel kinds (see the pixel package) and dispatches convolution's inner
// loops to a SIMD-equivalent backend chosen at process start, with a
// per-Resizer override (see the cpubackend package). No file formats, no
// CLI, and no persisted state are part of this package; it is a pure
// resampling core meant to be embedded in a larger image pipeline.
package fresize
