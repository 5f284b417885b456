package arspaint

import (
	"image/color"
	"math"
)

// rubberBand is a shape gesture: the whole shape is redrawn from the fixed
// start point to the latest sample on every tick.
type rubberBand struct {
	capture
	start Point
}

// drawFunc traces a shape from start to end into the scratch.
type drawFunc func(c *capture, start, end Point, width float64, col color.NRGBA)

func (r *rubberBand) update(ctx *ToolContext, in Input, name string, draw drawFunc) Command {
	r.ensure(ctx.Layers)

	if in.Pressed {
		if p, ok := in.point(); ok {
			if r.state == gestureIdle {
				r.start = p
				r.state = gestureDrawing
			}
			r.scratch.ClearDirty()
			draw(&r.capture, r.start, p, ctx.Settings.LineWidth, ctx.Color)
		}
	}

	if in.Released {
		return r.commit(ctx, name, false)
	}
	return nil
}

// LineTool draws a straight stroke between press and release.
type LineTool struct {
	rubberBand
}

// NewLineTool creates a line tool for a width x height canvas.
func NewLineTool(width, height int) *LineTool {
	return &LineTool{rubberBand{capture: newCapture(width, height)}}
}

func (t *LineTool) Name() string   { return "Line" }
func (t *LineTool) Kind() ToolKind { return ToolLine }

func (t *LineTool) Update(ctx *ToolContext, in Input) Command {
	return t.update(ctx, in, "Line", drawLine)
}

func drawLine(c *capture, start, end Point, width float64, col color.NRGBA) {
	c.segment(start, end, 1, width, col)
}

func (t *LineTool) Cursor(pos Point, s ToolSettings) []Guide {
	return []Guide{{Kind: GuideDot, Center: pos, Radius: s.LineWidth, Color: guideWhite}}
}

func (t *LineTool) Configure(s *ToolSettings) { s.clampLine() }

// RectangleTool draws the outline of the rectangle spanned by press and
// current position.
type RectangleTool struct {
	rubberBand
}

// NewRectangleTool creates a rectangle tool for a width x height canvas.
func NewRectangleTool(width, height int) *RectangleTool {
	return &RectangleTool{rubberBand{capture: newCapture(width, height)}}
}

func (t *RectangleTool) Name() string   { return "Rectangle" }
func (t *RectangleTool) Kind() ToolKind { return ToolRectangle }

func (t *RectangleTool) Update(ctx *ToolContext, in Input) Command {
	return t.update(ctx, in, "Rectangle", drawRectangle)
}

// drawRectangle traces the four edges clockwise from the top-left corner.
func drawRectangle(c *capture, start, end Point, width float64, col color.NRGBA) {
	r := Rect{
		Min: Pt(math.Min(start.X, end.X), math.Min(start.Y, end.Y)),
		Max: Pt(math.Max(start.X, end.X), math.Max(start.Y, end.Y)),
	}
	corners := r.Corners()
	for i, p := range corners {
		c.segment(p, corners[(i+1)%len(corners)], 1, width, col)
	}
}

func (t *RectangleTool) Cursor(pos Point, s ToolSettings) []Guide {
	return []Guide{{Kind: GuideCircle, Center: pos, Radius: s.LineWidth, Color: guideWhite}}
}

func (t *RectangleTool) Configure(s *ToolSettings) { s.clampLine() }

// EllipseTool draws the outline of the ellipse inscribed in the rectangle
// spanned by press and current position.
type EllipseTool struct {
	rubberBand
}

// minEllipseSteps is the fewest dabs an ellipse outline is drawn with.
const minEllipseSteps = 10

// NewEllipseTool creates an ellipse tool for a width x height canvas.
func NewEllipseTool(width, height int) *EllipseTool {
	return &EllipseTool{rubberBand{capture: newCapture(width, height)}}
}

func (t *EllipseTool) Name() string   { return "Ellipse" }
func (t *EllipseTool) Kind() ToolKind { return ToolEllipse }

func (t *EllipseTool) Update(ctx *ToolContext, in Input) Command {
	return t.update(ctx, in, "Ellipse", drawEllipse)
}

// drawEllipse places one dab per step of angle. The step count is the
// approximate circumference 2*pi*sqrt((a*a+b*b)/2), at least 10.
func drawEllipse(c *capture, start, end Point, width float64, col color.NRGBA) {
	center := Pt((start.X+end.X)/2, (start.Y+end.Y)/2)
	rx := math.Abs(end.X-start.X) / 2
	ry := math.Abs(end.Y-start.Y) / 2

	circ := 2 * math.Pi * math.Sqrt((rx*rx+ry*ry)/2)
	steps := int(max(circ, minEllipseSteps))
	for i := 0; i <= steps; i++ {
		a := float64(i) / float64(steps) * 2 * math.Pi
		c.dot(Pt(center.X+rx*math.Cos(a), center.Y+ry*math.Sin(a)), width, col)
	}
}

func (t *EllipseTool) Cursor(pos Point, _ ToolSettings) []Guide {
	return []Guide{{Kind: GuideDot, Center: pos, Radius: 2, Color: guideWhite}}
}

func (t *EllipseTool) Configure(s *ToolSettings) { s.clampLine() }
