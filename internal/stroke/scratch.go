package stroke

import (
	"image"
	"image/color"
	"math"

	intImage "github.com/gogpu/arspaint/internal/image"
)

// Point is a sub-pixel position in canvas space
// (internal copy to avoid an import cycle with the root package).
type Point struct {
	X, Y float64
}

// Lerp interpolates between p and q by t.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Scratch is a canvas-sized preview buffer with an accumulated dirty rectangle.
//
// Thread safety: Scratch is not safe for concurrent access.
type Scratch struct {
	buf   *intImage.ImageBuf
	dirty image.Rectangle
}

// NewScratch allocates a transparent scratch buffer.
// Non-positive dimensions produce a 1x1 buffer.
func NewScratch(width, height int) *Scratch {
	return &Scratch{buf: newBuf(width, height)}
}

func newBuf(width, height int) *intImage.ImageBuf {
	buf, _ := intImage.NewImageBuf(max(width, 1), max(height, 1))
	return buf
}

// Ensure reallocates the buffer when the canvas size changed.
// Any in-flight stroke is dropped. Reports whether a reallocation happened.
func (s *Scratch) Ensure(width, height int) bool {
	if s.buf.Width() == width && s.buf.Height() == height {
		return false
	}
	s.buf = newBuf(width, height)
	s.dirty = image.Rectangle{}
	return true
}

// Buffer returns the scratch pixels.
func (s *Scratch) Buffer() *intImage.ImageBuf {
	return s.buf
}

// Dirty returns the accumulated dirty rectangle.
func (s *Scratch) Dirty() image.Rectangle {
	return s.dirty
}

// HasDirty reports whether anything has been stamped since the last reset.
func (s *Scratch) HasDirty() bool {
	return !s.dirty.Empty()
}

// Expand grows the dirty rectangle to include r, clipped to the buffer.
func (s *Scratch) Expand(r image.Rectangle) {
	s.dirty = s.dirty.Union(r.Intersect(s.buf.Bounds()))
}

// ClearDirty erases the pixels inside the dirty rectangle and resets it.
// Rubber-band tools call this before redrawing their whole shape.
func (s *Scratch) ClearDirty() {
	s.buf.ClearRect(s.dirty)
	s.dirty = image.Rectangle{}
}

// Discard drops the current stroke without committing it.
func (s *Scratch) Discard() {
	s.ClearDirty()
}

// StampCircle fills a hard-edged circle centered at p.
// The center and radius are truncated to integers; pixels within the
// squared radius are overwritten with c.
func (s *Scratch) StampCircle(p Point, radius float64, c color.NRGBA) {
	cx, cy := int(p.X), int(p.Y)
	r := int(radius)
	rr := r * r

	box := image.Rect(cx-r, cy-r, cx+r+1, cy+r+1).Intersect(s.buf.Bounds())
	if box.Empty() {
		return
	}
	s.dirty = s.dirty.Union(box)

	for y := box.Min.Y; y < box.Max.Y; y++ {
		dy := y - cy
		for x := box.Min.X; x < box.Max.X; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= rr {
				s.buf.Set(x, y, c)
			}
		}
	}
}

// StampTexture merges tex into the scratch with its top-left corner at at.
// Each texel's alpha is multiplied by c's alpha; the resulting pixel is
// written only where it is more opaque than what the scratch already holds,
// so overlapping stamps keep the stronger sample instead of accumulating.
func (s *Scratch) StampTexture(tex *intImage.ImageBuf, at image.Point, c color.NRGBA) {
	box := tex.Bounds().Add(at).Intersect(s.buf.Bounds())
	if box.Empty() {
		return
	}
	s.dirty = s.dirty.Union(box)

	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			ta := tex.Alpha(x-at.X, y-at.Y)
			a := uint8(uint16(ta) * uint16(c.A) / 255)
			if a == 0 || a <= s.buf.Alpha(x, y) {
				continue
			}
			s.buf.Set(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: a})
		}
	}
}

// Walk visits evenly spaced points from p to q inclusive.
// The number of intervals is the distance divided by step, truncated and at
// least one, so both endpoints are always visited. A step below 1 is
// treated as 1.
func Walk(p, q Point, step float64, visit func(Point)) {
	step = max(step, 1)
	steps := int(max(p.Distance(q)/step, 1))
	for i := 0; i <= steps; i++ {
		visit(p.Lerp(q, float64(i)/float64(steps)))
	}
}
