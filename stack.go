package arspaint

import (
	"image"
	"image/color"
	"math"
	"slices"

	"golang.org/x/text/unicode/norm"

	intImage "github.com/gogpu/arspaint/internal/image"
	"github.com/gogpu/arspaint/internal/num"
)

// BackgroundName is the name of the layer every new stack starts with.
const BackgroundName = "Background"

// LayerStack is the ordered set of layers of one canvas plus a lazily
// recomputed composite.
//
// Index 0 is the bottom layer. The stack is never empty and the active
// index always refers to an existing layer. Every setter returns false and
// leaves the stack unchanged when given an invalid index.
type LayerStack struct {
	width  int
	height int
	layers []*Layer
	active int

	composite *intImage.ImageBuf
	dirty     bool
}

// NewLayerStack creates a canvas with a single raster layer named
// "Background" filled with bg.
// Returns ErrInvalidDimensions if width or height is non-positive.
func NewLayerStack(width, height int, bg color.NRGBA) (*LayerStack, error) {
	buf, err := intImage.NewImageBuf(width, height)
	if err != nil {
		return nil, err
	}
	buf.Fill(bg)
	return newStackFromBuffer(buf), nil
}

// newStackFromBuffer wraps buf as the background layer of a new stack.
func newStackFromBuffer(buf *intImage.ImageBuf) *LayerStack {
	bg := newLayer(BackgroundName, &RasterData{buf: buf})
	return &LayerStack{
		width:  buf.Width(),
		height: buf.Height(),
		layers: []*Layer{bg},
		dirty:  true,
	}
}

// Width returns the canvas width.
func (s *LayerStack) Width() int { return s.width }

// Height returns the canvas height.
func (s *LayerStack) Height() int { return s.height }

// Bounds returns the canvas rectangle anchored at the origin.
func (s *LayerStack) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// Len returns the number of layers.
func (s *LayerStack) Len() int { return len(s.layers) }

// Layer returns the layer at index i, or nil if i is out of range.
func (s *LayerStack) Layer(i int) *Layer {
	if !s.valid(i) {
		return nil
	}
	return s.layers[i]
}

// Layers returns the layers bottom to top. The slice is a copy.
func (s *LayerStack) Layers() []*Layer {
	return slices.Clone(s.layers)
}

// ActiveIndex returns the index of the layer tools operate on.
func (s *LayerStack) ActiveIndex() int { return s.active }

// ActiveLayer returns the layer tools operate on.
func (s *LayerStack) ActiveLayer() *Layer { return s.Layer(s.active) }

// SetActive selects the layer tools operate on.
func (s *LayerStack) SetActive(i int) bool {
	if !s.valid(i) {
		return false
	}
	s.active = i
	return true
}

// AddLayer places l on top of the stack and makes it active.
// Raster and tone layers must match the canvas size.
func (s *LayerStack) AddLayer(l *Layer) bool {
	return s.insertLayer(len(s.layers), l)
}

// insertLayer places l at index i (0 = bottom, Len() = top) and makes it
// active. Raster and tone layers must match the canvas size.
func (s *LayerStack) insertLayer(i int, l *Layer) bool {
	if l == nil || i < 0 || i > len(s.layers) || slices.Contains(s.layers, l) {
		return false
	}
	if buf := rasterBuffer(l); buf != nil && (buf.Width() != s.width || buf.Height() != s.height) {
		return false
	}
	s.layers = slices.Insert(s.layers, i, l)
	s.active = i
	s.dirty = true
	return true
}

// moveLayer moves the layer at from to index to, shifting the layers in
// between. The active index follows the layer it referred to.
func (s *LayerStack) moveLayer(from, to int) bool {
	if !s.valid(from) || !s.valid(to) {
		return false
	}
	if from == to {
		return true
	}
	active := s.layers[s.active]
	l := s.layers[from]
	s.layers = slices.Delete(s.layers, from, from+1)
	s.layers = slices.Insert(s.layers, to, l)
	s.active = slices.Index(s.layers, active)
	s.dirty = true
	return true
}

// AddShape appends a shape to the vector layer at index i.
// Returns false if the layer is not a vector layer.
func (s *LayerStack) AddShape(i int, sh Shape) bool {
	l := s.Layer(i)
	if l == nil || sh == nil {
		return false
	}
	v, ok := l.data.(*VectorData)
	if !ok {
		return false
	}
	v.Shapes = append(v.Shapes, sh)
	s.dirty = true
	return true
}

// SetVisible shows or hides the layer at index i.
func (s *LayerStack) SetVisible(i int, visible bool) bool {
	return s.update(i, func(l *Layer) { l.visible = visible })
}

// SetLocked protects the layer at index i from tools.
func (s *LayerStack) SetLocked(i int, locked bool) bool {
	return s.update(i, func(l *Layer) { l.locked = locked })
}

// SetAlphaLocked restricts painting on the layer at index i to pixels that
// already have alpha.
func (s *LayerStack) SetAlphaLocked(i int, locked bool) bool {
	return s.update(i, func(l *Layer) { l.alphaLocked = locked })
}

// SetClipped masks the layer at index i by the layer directly below it.
// Has no visible effect on the bottom layer.
func (s *LayerStack) SetClipped(i int, clipped bool) bool {
	return s.update(i, func(l *Layer) { l.clipped = clipped })
}

// SetOpacity sets the opacity of the layer at index i, clamped to [0, 1].
// NaN is rejected.
func (s *LayerStack) SetOpacity(i int, opacity float64) bool {
	if math.IsNaN(opacity) {
		return false
	}
	return s.update(i, func(l *Layer) { l.opacity = num.Clamp01(opacity) })
}

// SetBlendMode sets the blend mode of the layer at index i.
// Returns false for an undefined mode.
func (s *LayerStack) SetBlendMode(i int, mode BlendMode) bool {
	if !mode.IsValid() {
		return false
	}
	return s.update(i, func(l *Layer) { l.blend = mode })
}

// SetName renames the layer at index i. The name is stored in NFC form.
func (s *LayerStack) SetName(i int, name string) bool {
	return s.update(i, func(l *Layer) { l.name = norm.NFC.String(name) })
}

// SetTone updates the halftone parameters of the tone layer at index i.
// Returns false if the layer is not a tone layer.
func (s *LayerStack) SetTone(i int, frequency, density float64) bool {
	l := s.Layer(i)
	if l == nil {
		return false
	}
	t, ok := l.data.(*ToneData)
	if !ok {
		return false
	}
	t.Frequency, t.Density = frequency, num.Clamp01(density)
	s.dirty = true
	return true
}

func (s *LayerStack) update(i int, fn func(*Layer)) bool {
	l := s.Layer(i)
	if l == nil {
		return false
	}
	fn(l)
	s.dirty = true
	return true
}

func (s *LayerStack) valid(i int) bool {
	return i >= 0 && i < len(s.layers)
}

// buffer returns the pixel buffer of layer i, nil for vector layers and
// invalid indices.
func (s *LayerStack) buffer(i int) *intImage.ImageBuf {
	return rasterBuffer(s.Layer(i))
}

// MarkDirty invalidates the composite. Call it after writing to a layer
// through a view returned by Layer.Image.
func (s *LayerStack) MarkDirty() { s.dirty = true }

// Dirty reports whether the composite will be recomputed on the next read.
func (s *LayerStack) Dirty() bool { return s.dirty }

// Composite returns the flattened image, recomputing it first if any layer
// changed since the last call. The returned image is owned by the stack and
// must not be modified; its pixels are recycled on the next recompute.
func (s *LayerStack) Composite() *image.NRGBA {
	return s.compositeBuffer().NRGBA()
}

func (s *LayerStack) compositeBuffer() *intImage.ImageBuf {
	if s.dirty || s.composite == nil {
		prev := s.composite
		s.composite = composite(s.width, s.height, s.layers)
		s.dirty = false
		intImage.PutToDefault(prev)
	}
	return s.composite
}

// Resize changes the canvas size. Every raster and tone buffer is
// reallocated and the overlapping top-left region is preserved.
// Returns ErrInvalidDimensions if width or height is non-positive.
func (s *LayerStack) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidDimensions
	}
	for _, l := range s.layers {
		old := rasterBuffer(l)
		if old == nil {
			continue
		}
		buf, err := intImage.NewImageBuf(width, height)
		if err != nil {
			return err
		}
		buf.Paste(old, image.Point{})
		setRasterBuffer(l, buf)
	}
	s.width, s.height = width, height
	s.dirty = true
	return nil
}
