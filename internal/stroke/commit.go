package stroke

import (
	"image"
	"image/color"

	intImage "github.com/gogpu/arspaint/internal/image"
)

// CommitOptions controls how scratch pixels land on the target.
type CommitOptions struct {
	// AlphaLocked restricts painting to pixels that already have alpha and
	// preserves that alpha.
	AlphaLocked bool

	// Erase clears covered target pixels instead of painting. Alpha lock
	// does not protect against erasing.
	Erase bool
}

// Patch is the undo payload of a commit: the target pixels inside Rect
// before and after the write.
type Patch struct {
	Rect   image.Rectangle
	Before *intImage.ImageBuf
	After  *intImage.ImageBuf
}

// Commit writes the stroke into dst and returns the patch covering the
// dirty rectangle clipped to dst. The scratch is left empty either way.
// Returns false when there is nothing to commit.
func (s *Scratch) Commit(dst *intImage.ImageBuf, opts CommitOptions) (Patch, bool) {
	rect := s.dirty.Intersect(dst.Bounds())
	if rect.Empty() {
		s.Discard()
		return Patch{}, false
	}

	before := dst.Crop(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			px := s.buf.At(x, y)
			if px.A == 0 {
				continue
			}
			switch {
			case opts.Erase:
				dst.Set(x, y, color.NRGBA{})
			case opts.AlphaLocked:
				if a := dst.Alpha(x, y); a > 0 {
					px.A = a
					dst.Set(x, y, px)
				}
			default:
				dst.Set(x, y, px)
			}
		}
	}
	after := dst.Crop(rect)
	s.Discard()

	return Patch{Rect: rect, Before: before, After: after}, true
}
