package arspaint

import (
	"image"
	"image/color"
	"testing"
)

var (
	white       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black       = color.NRGBA{A: 255}
	red         = color.NRGBA{R: 255, A: 255}
	green       = color.NRGBA{G: 255, A: 255}
	transparent = color.NRGBA{}
)

func newTestDocument(t *testing.T, w, h int, opts ...DocumentOption) *Document {
	t.Helper()
	d, err := NewDocument(w, h, opts...)
	if err != nil {
		t.Fatalf("NewDocument(%d, %d) = %v", w, h, err)
	}
	return d
}

// drag presses at every point in order, releases, and returns the command
// produced by the release tick.
func drag(d *Document, pts ...image.Point) Command {
	for _, p := range pts {
		d.Dispatch(Press(p.X, p.Y))
	}
	return d.Dispatch(Release())
}

// snapshot copies the pixels of layer i.
func snapshot(t *testing.T, d *Document, i int) []byte {
	t.Helper()
	img := d.Layers().Layer(i).Image()
	if img == nil {
		t.Fatalf("layer %d has no image", i)
	}
	return append([]byte(nil), img.Pix...)
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}
