package arspaint

import (
	"image"
	"image/color"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/arspaint/internal/blend"
	intImage "github.com/gogpu/arspaint/internal/image"
)

// BlendMode selects how a layer's color mixes with the layers beneath it.
type BlendMode uint8

const (
	// BlendNormal paints the layer color over what is below.
	BlendNormal = BlendMode(blend.ModeNormal)
	// BlendMultiply darkens by multiplying channels.
	BlendMultiply = BlendMode(blend.ModeMultiply)
	// BlendAdd lightens by adding channels, saturating at 255.
	BlendAdd = BlendMode(blend.ModeAdd)
	// BlendScreen lightens by multiplying inverted channels.
	BlendScreen = BlendMode(blend.ModeScreen)
)

func (m BlendMode) mode() blend.Mode { return blend.Mode(m) }

// String returns the display name of the blend mode.
func (m BlendMode) String() string { return m.mode().String() }

// IsValid reports whether m is one of the four defined modes.
func (m BlendMode) IsValid() bool { return m.mode().IsValid() }

// ParseBlendMode looks a blend mode up by its display name, ignoring case.
func ParseBlendMode(name string) (BlendMode, bool) {
	m, ok := blend.ParseMode(name)
	return BlendMode(m), ok
}

// LayerKind identifies which variant of LayerData a layer holds.
type LayerKind uint8

const (
	// LayerRaster holds a canvas-sized RGBA8 buffer.
	LayerRaster LayerKind = iota
	// LayerVector holds an ordered list of shapes.
	LayerVector
	// LayerTone holds a canvas-sized RGBA8 buffer plus halftone parameters.
	LayerTone
)

// String returns the kind name.
func (k LayerKind) String() string {
	switch k {
	case LayerRaster:
		return "Raster"
	case LayerVector:
		return "Vector"
	case LayerTone:
		return "Tone"
	default:
		return "Unknown"
	}
}

// LayerData is the payload of a layer: one of *RasterData, *VectorData
// or *ToneData.
type LayerData interface {
	Kind() LayerKind
	layerData()
}

// RasterData is a plain pixel layer.
type RasterData struct {
	buf *intImage.ImageBuf
}

// VectorData is a list of shapes. It is kept structurally but is not
// composited and patch commands do not apply to it.
type VectorData struct {
	Shapes []Shape
}

// ToneData is a pixel layer with halftone parameters.
// Frequency and Density are stored but the compositor currently treats the
// layer exactly like a raster layer.
type ToneData struct {
	buf       *intImage.ImageBuf
	Frequency float64
	Density   float64
}

func (*RasterData) Kind() LayerKind { return LayerRaster }
func (*VectorData) Kind() LayerKind { return LayerVector }
func (*ToneData) Kind() LayerKind   { return LayerTone }

func (*RasterData) layerData() {}
func (*VectorData) layerData() {}
func (*ToneData) layerData()   {}

// Layer is one entry of a LayerStack.
//
// Layer fields are read through accessors and changed through the LayerStack
// setters so that every change invalidates the composite.
type Layer struct {
	name        string
	visible     bool
	locked      bool
	alphaLocked bool
	clipped     bool
	opacity     float64
	blend       BlendMode
	data        LayerData
}

func newLayer(name string, data LayerData) *Layer {
	return &Layer{
		name:    norm.NFC.String(name),
		visible: true,
		opacity: 1,
		blend:   BlendNormal,
		data:    data,
	}
}

// NewRasterLayer creates a visible, fully opaque, transparent raster layer.
// Returns ErrInvalidDimensions if width or height is non-positive.
func NewRasterLayer(name string, width, height int) (*Layer, error) {
	buf, err := intImage.NewImageBuf(width, height)
	if err != nil {
		return nil, err
	}
	return newLayer(name, &RasterData{buf: buf}), nil
}

// NewVectorLayer creates an empty vector layer.
func NewVectorLayer(name string) *Layer {
	return newLayer(name, &VectorData{})
}

// NewToneLayer creates a transparent tone layer with the given halftone
// frequency and density.
func NewToneLayer(name string, width, height int, frequency, density float64) (*Layer, error) {
	buf, err := intImage.NewImageBuf(width, height)
	if err != nil {
		return nil, err
	}
	return newLayer(name, &ToneData{buf: buf, Frequency: frequency, Density: density}), nil
}

// Name returns the layer name in NFC form.
func (l *Layer) Name() string { return l.name }

// Visible reports whether the layer takes part in compositing.
func (l *Layer) Visible() bool { return l.visible }

// Locked reports whether tools may modify the layer.
func (l *Layer) Locked() bool { return l.locked }

// AlphaLocked reports whether painting is restricted to existing alpha.
func (l *Layer) AlphaLocked() bool { return l.alphaLocked }

// Clipped reports whether the layer is masked by the layer below it.
func (l *Layer) Clipped() bool { return l.clipped }

// Opacity returns the layer opacity in [0, 1].
func (l *Layer) Opacity() float64 { return l.opacity }

// BlendMode returns the layer blend mode.
func (l *Layer) BlendMode() BlendMode { return l.blend }

// Data returns the layer payload.
func (l *Layer) Data() LayerData { return l.data }

// Kind returns the payload kind.
func (l *Layer) Kind() LayerKind { return l.data.Kind() }

// Image returns an *image.NRGBA view of the layer pixels, or nil for a
// vector layer. The view shares memory with the layer; writes through it
// bypass the history and require LayerStack.MarkDirty.
func (l *Layer) Image() *image.NRGBA {
	buf := rasterBuffer(l)
	if buf == nil {
		return nil
	}
	return buf.NRGBA()
}

// At returns the layer pixel at (x, y), transparent outside the canvas or
// for a vector layer.
func (l *Layer) At(x, y int) color.NRGBA {
	buf := rasterBuffer(l)
	if buf == nil {
		return color.NRGBA{}
	}
	return buf.At(x, y)
}

// Shapes returns the shapes of a vector layer, nil otherwise.
func (l *Layer) Shapes() []Shape {
	if v, ok := l.data.(*VectorData); ok {
		return v.Shapes
	}
	return nil
}

// rasterBuffer returns the pixel buffer of a raster or tone layer and nil
// for a vector layer.
func rasterBuffer(l *Layer) *intImage.ImageBuf {
	if l == nil {
		return nil
	}
	switch d := l.data.(type) {
	case *RasterData:
		return d.buf
	case *ToneData:
		return d.buf
	case *VectorData:
		return nil
	default:
		return nil
	}
}

// setRasterBuffer replaces the pixel buffer of a raster or tone layer.
func setRasterBuffer(l *Layer, buf *intImage.ImageBuf) {
	switch d := l.data.(type) {
	case *RasterData:
		d.buf = buf
	case *ToneData:
		d.buf = buf
	}
}

// Shape is a vector layer record: one of LineShape, RectShape or EllipseShape.
type Shape interface {
	shape()
}

// LineShape is a straight stroke.
type LineShape struct {
	Start, End Point
	Color      color.NRGBA
	Width      float64
}

// RectShape is an axis-aligned rectangle, outlined or filled.
type RectShape struct {
	Rect  Rect
	Color color.NRGBA
	Width float64
	Fill  bool
}

// EllipseShape is an ellipse inscribed in Rect, outlined or filled.
type EllipseShape struct {
	Rect  Rect
	Color color.NRGBA
	Width float64
	Fill  bool
}

func (LineShape) shape()    {}
func (RectShape) shape()    {}
func (EllipseShape) shape() {}
