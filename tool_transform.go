package arspaint

import (
	"image"
	"image/color"

	intImage "github.com/gogpu/arspaint/internal/image"
)

// transformState is the state of the Transform tool between ticks.
type transformState uint8

const (
	// transformIdle: nothing floating. The next Update tries a pick-up.
	transformIdle transformState = iota
	// transformFloating: selected pixels are lifted and waiting for a drag
	// or a commit.
	transformFloating
	// transformDragging: a handle is held.
	transformDragging
)

// handle is the part of the floating rectangle being dragged.
type handle uint8

const (
	handleNone handle = iota
	handleCenter
	handleTopLeft
	handleTopRight
	handleBottomLeft
	handleBottomRight
)

// HandleRadius is the distance within which a press grabs a corner handle.
const HandleRadius = 12.0

// TransformTool lifts the selected pixels of the active layer into a
// floating buffer that can be moved and resized, then stamps it back.
//
// Corner drags are not clamped: the rectangle may become degenerate or
// inverted, and commit then uses a size of at least one pixel.
type TransformTool struct {
	state    transformState
	floating *intImage.ImageBuf
	source   image.Rectangle
	current  Rect
	grab     handle
	offset   Point

	layer    int
	snapshot *intImage.ImageBuf
}

// NewTransformTool creates a transform tool.
func NewTransformTool() *TransformTool {
	return &TransformTool{}
}

func (t *TransformTool) Name() string   { return "Transform" }
func (t *TransformTool) Kind() ToolKind { return ToolTransform }

// Update picks the selection up if nothing is floating yet, then moves or
// resizes the floating rectangle while the button is held. The first
// pressed sample only decides which handle is grabbed. Update never
// returns a command; see Commit.
func (t *TransformTool) Update(ctx *ToolContext, in Input) Command {
	if t.state == transformIdle {
		t.pickUp(ctx)
		if t.state == transformIdle {
			return nil
		}
	}

	if !in.Pressed {
		t.state = transformFloating
		t.grab = handleNone
		return nil
	}
	p, ok := in.point()
	if !ok {
		return nil
	}
	if t.state == transformFloating {
		t.grab = t.hit(p)
		if t.grab != handleNone {
			t.state = transformDragging
		}
		return nil
	}
	t.drag(p)
	return nil
}

// pickUp lifts every selected pixel of the active layer inside the
// selection's bounding box and clears it in the layer.
func (t *TransformTool) pickUp(ctx *ToolContext) {
	mask := ctx.Selection.Mask()
	if mask == nil {
		return
	}
	bounds, ok := mask.SelectedBounds()
	if !ok {
		return
	}
	idx := ctx.Layers.ActiveIndex()
	layer := ctx.Layers.ActiveLayer()
	buf := rasterBuffer(layer)
	if buf == nil || layer.locked {
		return
	}
	floating, err := intImage.NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return
	}

	t.snapshot = buf.Clone()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !mask.Selected(x, y) {
				continue
			}
			floating.Set(x-bounds.Min.X, y-bounds.Min.Y, buf.At(x, y))
			buf.Set(x, y, color.NRGBA{})
		}
	}
	ctx.Layers.MarkDirty()

	t.floating = floating
	t.source = bounds
	t.current = RectOf(bounds)
	t.layer = idx
	t.state = transformFloating
	Logger().Debug("transform picked up", "layer", idx, "rect", bounds)
}

func (t *TransformTool) hit(p Point) handle {
	r := t.current
	switch {
	case p.Distance(r.TopLeft()) < HandleRadius:
		return handleTopLeft
	case p.Distance(r.TopRight()) < HandleRadius:
		return handleTopRight
	case p.Distance(r.BottomLeft()) < HandleRadius:
		return handleBottomLeft
	case p.Distance(r.BottomRight()) < HandleRadius:
		return handleBottomRight
	case r.Contains(p):
		t.offset = p.Sub(r.Min)
		return handleCenter
	default:
		return handleNone
	}
}

func (t *TransformTool) drag(p Point) {
	r := &t.current
	switch t.grab {
	case handleCenter:
		size := r.Size()
		r.Min = p.Sub(t.offset)
		r.Max = r.Min.Add(size)
	case handleTopLeft:
		r.Min = p
	case handleTopRight:
		r.Max.X, r.Min.Y = p.X, p.Y
	case handleBottomLeft:
		r.Min.X, r.Max.Y = p.X, p.Y
	case handleBottomRight:
		r.Max = p
	}
}

// Commit resamples the floating buffer to the current rectangle, stamps its
// non-transparent pixels into the layer it came from and returns a command
// covering the whole layer, from the pick-up snapshot to the result.
// Returns nil when nothing is floating.
func (t *TransformTool) Commit(s *LayerStack) Command {
	if t.state == transformIdle {
		return nil
	}
	buf := s.buffer(t.layer)
	if buf == nil || !buf.Bounds().Eq(t.snapshot.Bounds()) {
		t.reset()
		return nil
	}

	w := int(max(t.current.Width(), 1))
	h := int(max(t.current.Height(), 1))
	resized := intImage.ScaleNearest(t.floating, w, h)
	if resized == nil {
		t.reset()
		return nil
	}
	ox, oy := int(t.current.Min.X), int(t.current.Min.Y)
	for y := range h {
		for x := range w {
			if p := resized.At(x, y); p.A > 0 {
				buf.Set(ox+x, oy+y, p)
			}
		}
	}
	s.MarkDirty()

	cmd := &PatchCommand{
		name:   "Transform",
		layer:  t.layer,
		before: t.snapshot,
		after:  buf.Clone(),
	}
	Logger().Debug("transform committed", "layer", t.layer, "rect", t.current)
	t.reset()
	return cmd
}

// Floating returns the lifted pixels and their current placement.
// ok is false when nothing is floating.
func (t *TransformTool) Floating() (img *image.NRGBA, placement Rect, ok bool) {
	if t.state == transformIdle {
		return nil, Rect{}, false
	}
	return t.floating.NRGBA(), t.current, true
}

// Source returns the rectangle the floating pixels were lifted from.
func (t *TransformTool) Source() (image.Rectangle, bool) {
	return t.source, t.state != transformIdle
}

func (t *TransformTool) reset() {
	t.state = transformIdle
	t.floating = nil
	t.snapshot = nil
	t.grab = handleNone
	t.source = image.Rectangle{}
	t.current = Rect{}
}

// Abort puts the lifted pixels back by restoring the pick-up snapshot.
func (t *TransformTool) Abort(s *LayerStack) {
	if t.state == transformIdle {
		return
	}
	if buf := s.buffer(t.layer); buf != nil && buf.Bounds().Eq(t.snapshot.Bounds()) {
		buf.Paste(t.snapshot, image.Point{})
		s.MarkDirty()
	}
	Logger().Debug("transform cancelled", "layer", t.layer)
	t.reset()
}

func (t *TransformTool) Preview() *image.NRGBA { return nil }

func (t *TransformTool) Cursor(Point, ToolSettings) []Guide {
	if t.state == transformIdle {
		return nil
	}
	guides := []Guide{{Kind: GuideRect, Rect: t.current, Color: guideWhite}}
	for _, c := range []Point{t.current.TopLeft(), t.current.TopRight(), t.current.BottomLeft(), t.current.BottomRight()} {
		guides = append(guides, Guide{Kind: GuideDot, Center: c, Radius: 4, Color: guideWhite})
	}
	return guides
}

func (t *TransformTool) Configure(*ToolSettings) {}
