package arspaint

import (
	"image"
	"math"
)

// RectSelectTool replaces the selection with an axis-aligned rectangle.
type RectSelectTool struct {
	state   gesture
	start   Point
	current Point
}

// NewRectSelectTool creates a rectangular selection tool.
func NewRectSelectTool() *RectSelectTool {
	return &RectSelectTool{}
}

func (t *RectSelectTool) Name() string   { return "Rect Selection" }
func (t *RectSelectTool) Kind() ToolKind { return ToolRectSelect }

// Update tracks the drag and installs the mask on release. The rectangle
// covers whole pixels from the smaller corner up to, not including, the
// larger one. A zero-area rectangle clears the selection instead.
func (t *RectSelectTool) Update(ctx *ToolContext, in Input) Command {
	if in.Pressed {
		if p, ok := in.point(); ok {
			if t.state == gestureIdle {
				t.start = p
				t.state = gestureDrawing
			}
			t.current = p
		}
	}
	if !in.Released {
		return nil
	}
	if t.state == gestureDrawing {
		t.apply(ctx)
	}
	t.state = gestureIdle
	return nil
}

func (t *RectSelectTool) apply(ctx *ToolContext) {
	r := image.Rect(
		max(int(math.Min(t.start.X, t.current.X)), 0),
		max(int(math.Min(t.start.Y, t.current.Y)), 0),
		max(int(math.Max(t.start.X, t.current.X)), 0),
		max(int(math.Max(t.start.Y, t.current.Y)), 0),
	)
	if r.Empty() {
		ctx.Selection.Clear()
		Logger().Debug("selection cleared")
		return
	}
	mask := NewMask(ctx.Layers.Width(), ctx.Layers.Height())
	mask.FillRect(r, Selected)
	ctx.Selection.Replace(mask)
	Logger().Debug("selection replaced", "tool", t.Name(), "rect", r)
}

func (t *RectSelectTool) Preview() *image.NRGBA { return nil }

func (t *RectSelectTool) Cursor(pos Point, _ ToolSettings) []Guide {
	guides := []Guide{{Kind: GuideDot, Center: pos, Radius: 2, Color: guideLightBlue}}
	if t.state == gestureDrawing {
		r := Rect{
			Min: Pt(math.Min(t.start.X, pos.X), math.Min(t.start.Y, pos.Y)),
			Max: Pt(math.Max(t.start.X, pos.X), math.Max(t.start.Y, pos.Y)),
		}
		guides = append(guides, Guide{Kind: GuideRect, Rect: r, Color: guideLightBlue})
	}
	return guides
}

func (t *RectSelectTool) Configure(*ToolSettings) {}

func (t *RectSelectTool) Abort(*LayerStack) { t.state = gestureIdle }

// LassoSelectTool replaces the selection with a free-form polygon.
type LassoSelectTool struct {
	points []Point
}

// NewLassoSelectTool creates a lasso selection tool.
func NewLassoSelectTool() *LassoSelectTool {
	return &LassoSelectTool{}
}

func (t *LassoSelectTool) Name() string   { return "Lasso Selection" }
func (t *LassoSelectTool) Kind() ToolKind { return ToolLassoSelect }

// Update records a vertex for every pressed sample. On release a polygon
// of at least three vertices replaces the selection; fewer leave it as is.
// The vertex list is emptied on every release.
func (t *LassoSelectTool) Update(ctx *ToolContext, in Input) Command {
	if in.Pressed {
		if p, ok := in.point(); ok {
			t.points = append(t.points, p)
		}
	}
	if !in.Released || len(t.points) == 0 {
		return nil
	}
	if len(t.points) > 2 {
		ctx.Selection.Replace(rasterizePolygon(t.points, ctx.Layers.Width(), ctx.Layers.Height()))
		Logger().Debug("selection replaced", "tool", t.Name(), "points", len(t.points))
	}
	t.points = t.points[:0]
	return nil
}

// rasterizePolygon selects every pixel whose integer coordinate lies inside
// the polygon by the even-odd rule. Only the polygon's bounding box is
// scanned, up to but not including its maximum coordinates.
func rasterizePolygon(pts []Point, width, height int) *Mask {
	mask := NewMask(width, height)

	minX, minY := float64(width), float64(height)
	maxX, maxY := 0.0, 0.0
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	x0, y0 := max(int(minX), 0), max(int(minY), 0)
	x1, y1 := min(max(int(maxX), 0), width), min(max(int(maxY), 0), height)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if insidePolygon(pts, Pt(float64(x), float64(y))) {
				mask.Set(x, y, Selected)
			}
		}
	}
	return mask
}

// insidePolygon is the even-odd ray casting test.
func insidePolygon(pts []Point, p Point) bool {
	inside := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

func (t *LassoSelectTool) Preview() *image.NRGBA { return nil }

func (t *LassoSelectTool) Cursor(pos Point, _ ToolSettings) []Guide {
	guides := []Guide{{Kind: GuideDot, Center: pos, Radius: 2, Color: guideLightBlue}}
	if len(t.points) > 1 {
		line := append(append([]Point(nil), t.points...), pos)
		guides = append(guides, Guide{Kind: GuidePolyline, Points: line, Color: guideLightBlue})
	}
	return guides
}

func (t *LassoSelectTool) Configure(*ToolSettings) {}

func (t *LassoSelectTool) Abort(*LayerStack) { t.points = t.points[:0] }
