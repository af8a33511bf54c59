// Package filter defines the reconstruction filters used by the convolution
// engine: real-valued, even, finite-support kernel functions k(x).
package filter

import "math"

// Kind is a tagged variant of the six named reconstruction filters.
type Kind uint8

const (
	// Box is the nearest-sample filter: k(x)=1 for |x|<0.5, else 0.
	Box Kind = iota
	// Bilinear (Triangle) is k(x)=max(0, 1-|x|).
	Bilinear
	// Hamming is sinc(x) windowed by a Hamming window, support 1.
	Hamming
	// Mitchell is the B=C=1/3 Mitchell-Netravali cubic, support 2.
	Mitchell
	// CatmullRom is the Keys cubic with B=0, C=0.5, support 2.
	CatmullRom
	// Lanczos3 is sinc(x)*sinc(x/3), support 3.
	Lanczos3
)

func (k Kind) String() string {
	switch k {
	case Box:
		return "Box"
	case Bilinear:
		return "Bilinear"
	case Hamming:
		return "Hamming"
	case Mitchell:
		return "Mitchell"
	case CatmullRom:
		return "CatmullRom"
	case Lanczos3:
		return "Lanczos3"
	default:
		return "Kind(unknown)"
	}
}

// Filter is an interpolator: a kernel function At, zero outside [0,
// Support), together with its support radius.
type Filter struct {
	// Support is the filter's support radius; At is assumed zero for
	// |t| >= Support.
	Support float64
	// At is the kernel function, called with t >= 0; Build can pass t equal
	// to Support.
	At func(t float64) float64
}

// New returns the Filter for the named Kind.
func New(k Kind) Filter {
	switch k {
	case Box:
		return boxFilter
	case Bilinear:
		return bilinearFilter
	case Hamming:
		return hammingFilter
	case Mitchell:
		return mitchellFilter
	case CatmullRom:
		return catmullRomFilter
	case Lanczos3:
		return lanczos3Filter
	default:
		panic("filter: unknown kind")
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x *= math.Pi
	return math.Sin(x) / x
}

// boxFilter is the nearest-sample box filter. Ties at the exact half-integer
// boundary |x| == 0.5 are treated as outside the support (strict
// inequality), so a destination sample centered exactly between two source
// samples picks the lower-indexed one consistently across repeated resizes.
var boxFilter = Filter{
	Support: 0.5,
	At: func(t float64) float64 {
		if t < 0.5 {
			return 1
		}
		return 0
	},
}

var bilinearFilter = Filter{
	Support: 1,
	At: func(t float64) float64 {
		if t < 1 {
			return 1 - t
		}
		return 0
	},
}

var hammingFilter = Filter{
	Support: 1,
	At: func(t float64) float64 {
		if t >= 1 {
			return 0
		}
		if t == 0 {
			return 1
		}
		x := t * math.Pi
		return (math.Sin(x) / x) * (0.54 + 0.46*math.Cos(x))
	},
}

// mitchellFilter is the B=C=1/3 Mitchell-Netravali cubic BC-spline; see
// Mitchell and Netravali, "Reconstruction Filters in Computer Graphics",
// Computer Graphics, Vol. 22, No. 4, pp. 221-228.
var mitchellFilter = Filter{
	Support: 2,
	At: func(t float64) float64 {
		const b, c = 1.0 / 3.0, 1.0 / 3.0
		if t < 1 {
			return ((12-9*b-6*c)*t*t*t +
				(-18+12*b+6*c)*t*t +
				(6 - 2*b)) / 6
		}
		if t < 2 {
			return ((-b-6*c)*t*t*t +
				(6*b+30*c)*t*t +
				(-12*b-48*c)*t +
				(8*b + 24*c)) / 6
		}
		return 0
	},
}

// catmullRomFilter is the Keys cubic with B=0, C=0.5.
var catmullRomFilter = Filter{
	Support: 2,
	At: func(t float64) float64 {
		if t < 1 {
			return (1.5*t-2.5)*t*t + 1
		}
		if t < 2 {
			return ((-0.5*t+2.5)*t-4)*t + 2
		}
		return 0
	},
}

var lanczos3Filter = Filter{
	Support: 3,
	At: func(t float64) float64 {
		if t >= 3 {
			return 0
		}
		return sinc(t) * sinc(t/3)
	},
}
