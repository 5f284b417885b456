// Package image provides the RGBA8 pixel buffer used by layers, tool
// scratch buffers and undo patches.
//
// All pixel data is stored as straight (non-premultiplied) RGBA, 4 bytes per
// pixel, rows packed without padding. Accessors are lenient: reads outside
// the buffer return transparent black and writes outside the buffer are
// ignored.
package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
)

// Common errors for image operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")
)

// BytesPerPixel is the storage size of one RGBA8 pixel.
const BytesPerPixel = 4

// ImageBuf is a straight-alpha RGBA8 pixel buffer.
//
// Thread safety: ImageBuf is not safe for concurrent mutation.
type ImageBuf struct {
	data   []byte
	width  int
	height int
}

// NewImageBuf creates a transparent buffer with the given dimensions.
// Returns ErrInvalidDimensions if width or height is non-positive.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &ImageBuf{
		data:   make([]byte, width*height*BytesPerPixel),
		width:  width,
		height: height,
	}, nil
}

// FromNRGBA copies an *image.NRGBA into a new buffer.
// Returns nil if the image is empty.
func FromNRGBA(img *image.NRGBA) *ImageBuf {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	buf, err := NewImageBuf(w, h)
	if err != nil {
		return nil
	}
	rowLen := w * BytesPerPixel
	for y := range h {
		src := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(buf.data[y*rowLen:(y+1)*rowLen], img.Pix[src:src+rowLen])
	}
	return buf
}

// Clone creates a deep copy of the buffer.
func (b *ImageBuf) Clone() *ImageBuf {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &ImageBuf{data: data, width: b.width, height: b.height}
}

// Width returns the buffer width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// Bounds returns the buffer rectangle anchored at the origin.
func (b *ImageBuf) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// RowBytes returns the pixel data for row y.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	stride := b.width * BytesPerPixel
	return b.data[y*stride : (y+1)*stride]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * BytesPerPixel
}

// At returns the pixel at (x, y).
// Returns transparent black if coordinates are out of bounds.
func (b *ImageBuf) At(x, y int) color.NRGBA {
	i := b.PixelOffset(x, y)
	if i < 0 {
		return color.NRGBA{}
	}
	p := b.data[i : i+4 : i+4]
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Alpha returns the alpha channel at (x, y), 0 outside the buffer.
func (b *ImageBuf) Alpha(x, y int) uint8 {
	i := b.PixelOffset(x, y)
	if i < 0 {
		return 0
	}
	return b.data[i+3]
}

// Set writes the pixel at (x, y). Out-of-bounds writes are ignored.
func (b *ImageBuf) Set(x, y int, c color.NRGBA) {
	i := b.PixelOffset(x, y)
	if i < 0 {
		return
	}
	p := b.data[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Clear sets all pixels to transparent black.
func (b *ImageBuf) Clear() {
	clear(b.data)
}

// Fill sets all pixels to c.
func (b *ImageBuf) Fill(c color.NRGBA) {
	for i := 0; i < len(b.data); i += BytesPerPixel {
		b.data[i], b.data[i+1], b.data[i+2], b.data[i+3] = c.R, c.G, c.B, c.A
	}
}

// ClearRect sets all pixels inside r to transparent black.
// r is clipped to the buffer bounds.
func (b *ImageBuf) ClearRect(r image.Rectangle) {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.RowBytes(y)
		clear(row[r.Min.X*BytesPerPixel : r.Max.X*BytesPerPixel])
	}
}

// Crop copies the pixels inside r into a new buffer.
// r is clipped to the buffer bounds; returns nil if nothing remains.
func (b *ImageBuf) Crop(r image.Rectangle) *ImageBuf {
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return nil
	}
	out, _ := NewImageBuf(r.Dx(), r.Dy())
	rowLen := r.Dx() * BytesPerPixel
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := b.RowBytes(y)[r.Min.X*BytesPerPixel:]
		copy(out.RowBytes(y-r.Min.Y), src[:rowLen])
	}
	return out
}

// Paste copies src into the buffer with its top-left corner at at.
// Pixels falling outside the buffer are dropped. No blending is performed.
func (b *ImageBuf) Paste(src *ImageBuf, at image.Point) {
	if src == nil {
		return
	}
	dr := src.Bounds().Add(at).Intersect(b.Bounds())
	if dr.Empty() {
		return
	}
	for y := dr.Min.Y; y < dr.Max.Y; y++ {
		srow := src.RowBytes(y - at.Y)[(dr.Min.X-at.X)*BytesPerPixel:]
		drow := b.RowBytes(y)[dr.Min.X*BytesPerPixel : dr.Max.X*BytesPerPixel]
		copy(drow, srow)
	}
}

// Equal reports whether both buffers have the same size and pixels.
func (b *ImageBuf) Equal(other *ImageBuf) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.width == other.width && b.height == other.height && bytes.Equal(b.data, other.data)
}

// NRGBA returns an *image.NRGBA view sharing the buffer's pixel data.
// Writes through the view modify the buffer.
func (b *ImageBuf) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.data,
		Stride: b.width * BytesPerPixel,
		Rect:   b.Bounds(),
	}
}

// rgbaCarrier returns the buffer bytes typed as *image.RGBA.
// Used only with operators that copy samples verbatim, so the
// premultiplied interpretation of image.RGBA never applies.
func (b *ImageBuf) rgbaCarrier() *image.RGBA {
	return &image.RGBA{
		Pix:    b.data,
		Stride: b.width * BytesPerPixel,
		Rect:   b.Bounds(),
	}
}
