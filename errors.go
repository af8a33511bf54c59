package fresize

import "errors"

// ErrDifferentPixelKinds is returned by Resizer.Resize when the source and
// destination views do not share the same pixel kind. It is the only error
// Resize can return; every other contract violation (aliased views,
// zero-size views, an asserted-but-unsupported CPU backend) is a programmer
// error and is not reported through the error return.
var ErrDifferentPixelKinds = errors.New("fresize: source and destination views have different pixel kinds")
