// Package view implements borrowed rectangular windows over a raster image:
// an owning Image, and non-owning View/ViewMut windows over it that expose
// row iteration and 4-row-group iteration for cache-friendly kernels.
package view

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/naisuuuu/fresize/pixel"
)

// Sentinel errors returned at image and view construction. All are
// recoverable by the caller; see errors.Is.
var (
	ErrInvalidBufferSize      = errors.New("view: buffer is smaller than width*height*bytes-per-pixel")
	ErrInvalidBufferAlignment = errors.New("view: buffer alignment does not satisfy the pixel kind's preferred access width")
	ErrPositionOutOfBounds    = errors.New("view: crop position lies outside the parent view")
	ErrSizeOutOfBounds        = errors.New("view: crop size extends past the parent view's bounds")
	ErrInvalidRowsCount       = errors.New("view: count of rows does not match image height")
	ErrInvalidRowSize         = errors.New("view: size of a row does not match image width")
)

// Image owns a contiguous, row-major, unpadded pixel buffer.
type Image struct {
	width, height int
	kind          pixel.Kind
	stride        int // bytes per row; always width*kind.BytesPerPixel()
	buf           []byte
}

// New returns a zero-initialized Image of the given dimensions and kind.
// Width and height must be strictly positive; this is a programmer error
// (panics) rather than a recoverable one.
func New(width, height int, kind pixel.Kind) *Image {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("view: width and height must be positive, got %dx%d", width, height))
	}
	stride := width * kind.BytesPerPixel()
	return &Image{
		width:  width,
		height: height,
		kind:   kind,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

// FromBytes adopts buf as the backing storage for a width x height image of
// the given kind. It fails if buf is too small, or if its first byte is not
// aligned to kind.Align().
func FromBytes(width, height int, kind pixel.Kind, buf []byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("view: width and height must be positive, got %dx%d", width, height))
	}
	stride := width * kind.BytesPerPixel()
	if len(buf) < stride*height {
		return nil, ErrInvalidBufferSize
	}
	if align := kind.Align(); align > 1 && len(buf) > 0 {
		if uintptr(unsafe.Pointer(&buf[0]))%uintptr(align) != 0 {
			return nil, ErrInvalidBufferAlignment
		}
	}
	return &Image{width: width, height: height, kind: kind, stride: stride, buf: buf}, nil
}

// FromRows builds an Image from a caller-supplied slice of row buffers, one
// per image row. Every row must be at least width*kind.BytesPerPixel() bytes
// long; bytes beyond that (e.g. padding) are ignored. Rows are always copied
// into a new buffer. The row count must equal height.
func FromRows(width, height int, kind pixel.Kind, rows [][]byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("view: width and height must be positive, got %dx%d", width, height))
	}
	if len(rows) != height {
		return nil, ErrInvalidRowsCount
	}
	rowSize := width * kind.BytesPerPixel()
	img := New(width, height, kind)
	for y, row := range rows {
		if len(row) < rowSize {
			return nil, ErrInvalidRowSize
		}
		copy(img.buf[y*img.stride:(y+1)*img.stride], row[:rowSize])
	}
	return img, nil
}

// Width returns the image width in pixels.
func (img *Image) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image) Height() int { return img.height }

// Kind returns the image's fixed pixel kind.
func (img *Image) Kind() pixel.Kind { return img.kind }

// Stride returns the number of bytes between the start of consecutive rows.
func (img *Image) Stride() int { return img.stride }

// Bytes returns the raw backing buffer.
func (img *Image) Bytes() []byte { return img.buf }

// View returns a read-only view over the whole image.
func (img *Image) View() View {
	return View{
		buf:    img.buf,
		stride: img.stride,
		rect:   Rect{0, 0, img.width, img.height},
		kind:   img.kind,
	}
}

// ViewMut returns an exclusive, mutable view over the whole image. Callers
// must not construct more than one live ViewMut (or a ViewMut alongside any
// View) over overlapping regions of the same Image; this is a programmer
// error that Go's type system does not prevent.
func (img *Image) ViewMut() ViewMut {
	return ViewMut{
		buf:    img.buf,
		stride: img.stride,
		rect:   Rect{0, 0, img.width, img.height},
		kind:   img.kind,
	}
}

// Rect is an axis-aligned rectangle in pixel coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// View is a non-owning, read-only rectangular window over an Image's buffer.
type View struct {
	buf    []byte
	stride int // parent image's stride, in bytes
	rect   Rect
	kind   pixel.Kind
}

// Width returns the view's width in pixels.
func (v View) Width() int { return v.rect.Width }

// Height returns the view's height in pixels.
func (v View) Height() int { return v.rect.Height }

// Kind returns the view's pixel kind.
func (v View) Kind() pixel.Kind { return v.kind }

func (v View) rowOffset(y int) int {
	return (v.rect.Y+y)*v.stride + v.rect.X*v.kind.BytesPerPixel()
}

// Row returns the bytes of row y (0 <= y < Height()), exactly Width()
// pixels wide.
func (v View) Row(y int) []byte {
	rowBytes := v.rect.Width * v.kind.BytesPerPixel()
	off := v.rowOffset(y)
	return v.buf[off : off+rowBytes : off+rowBytes]
}

// Rows4 returns four consecutive rows starting at y, for kernels that
// process a 4-high strip at a time. ok is false if y+4 > Height(), in which
// case callers should fall back to single-row iteration for the remainder.
func (v View) Rows4(y int) (r0, r1, r2, r3 []byte, ok bool) {
	if y+4 > v.rect.Height {
		return nil, nil, nil, nil, false
	}
	return v.Row(y), v.Row(y + 1), v.Row(y + 2), v.Row(y + 3), true
}

// Crop returns the sub-view of v starting at (x, y) with the given width and
// height, in the view's own coordinate space.
func (v View) Crop(x, y, w, h int) (View, error) {
	rect, err := crop(v.rect, x, y, w, h)
	if err != nil {
		return View{}, err
	}
	return View{buf: v.buf, stride: v.stride, rect: rect, kind: v.kind}, nil
}

// ViewMut is a non-owning, mutable rectangular window over an Image's
// buffer. It behaves like View but also exposes write access; the caller is
// responsible for ensuring exclusivity (see Image.ViewMut).
type ViewMut struct {
	buf    []byte
	stride int
	rect   Rect
	kind   pixel.Kind
}

// Width returns the view's width in pixels.
func (v ViewMut) Width() int { return v.rect.Width }

// Height returns the view's height in pixels.
func (v ViewMut) Height() int { return v.rect.Height }

// Kind returns the view's pixel kind.
func (v ViewMut) Kind() pixel.Kind { return v.kind }

func (v ViewMut) rowOffset(y int) int {
	return (v.rect.Y+y)*v.stride + v.rect.X*v.kind.BytesPerPixel()
}

// Row returns the bytes of row y. The slice shares the view's buffer, so
// later writes through RowMut are visible in it.
func (v ViewMut) Row(y int) []byte {
	rowBytes := v.rect.Width * v.kind.BytesPerPixel()
	off := v.rowOffset(y)
	return v.buf[off : off+rowBytes : off+rowBytes]
}

// RowMut returns the mutable bytes of row y.
func (v ViewMut) RowMut(y int) []byte {
	rowBytes := v.rect.Width * v.kind.BytesPerPixel()
	off := v.rowOffset(y)
	return v.buf[off : off+rowBytes : off+rowBytes]
}

// Rows4Mut returns four consecutive mutable rows starting at y. ok is false
// if y+4 > Height().
func (v ViewMut) Rows4Mut(y int) (r0, r1, r2, r3 []byte, ok bool) {
	if y+4 > v.rect.Height {
		return nil, nil, nil, nil, false
	}
	return v.RowMut(y), v.RowMut(y + 1), v.RowMut(y + 2), v.RowMut(y + 3), true
}

// Crop returns the mutable sub-view of v starting at (x, y).
func (v ViewMut) Crop(x, y, w, h int) (ViewMut, error) {
	rect, err := crop(v.rect, x, y, w, h)
	if err != nil {
		return ViewMut{}, err
	}
	return ViewMut{buf: v.buf, stride: v.stride, rect: rect, kind: v.kind}, nil
}

// AsView downgrades a ViewMut to a read-only View over the same window.
func (v ViewMut) AsView() View {
	return View{buf: v.buf, stride: v.stride, rect: v.rect, kind: v.kind}
}

func crop(parent Rect, x, y, w, h int) (Rect, error) {
	if x < 0 || y < 0 || x > parent.Width || y > parent.Height {
		return Rect{}, ErrPositionOutOfBounds
	}
	if w < 0 || h < 0 || x+w > parent.Width || y+h > parent.Height {
		return Rect{}, ErrSizeOutOfBounds
	}
	return Rect{X: parent.X + x, Y: parent.Y + y, Width: w, Height: h}, nil
}
