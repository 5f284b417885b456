package arspaint

import (
	"image"
	"image/color"

	intImage "github.com/gogpu/arspaint/internal/image"
	"github.com/gogpu/arspaint/internal/num"
	"github.com/gogpu/arspaint/internal/stroke"
)

// BrushTool paints round or textured dabs along a stabilized path.
type BrushTool struct {
	capture

	// last is the previous stabilized position of the current gesture.
	last Point

	texture   *intImage.ImageBuf
	stamp     *intImage.ImageBuf
	stampSide int
}

// NewBrushTool creates a brush for a width x height canvas.
func NewBrushTool(width, height int) *BrushTool {
	return &BrushTool{capture: newCapture(width, height)}
}

func (t *BrushTool) Name() string   { return "Brush" }
func (t *BrushTool) Kind() ToolKind { return ToolBrush }

// SetTexture replaces the round dab with img, resampled to a square of
// twice the brush size. A nil image restores the round dab.
func (t *BrushTool) SetTexture(img image.Image) {
	t.stamp, t.stampSide = nil, 0
	if img == nil {
		t.texture = nil
		return
	}
	t.texture = intImage.FromStdImage(img)
}

// HasTexture reports whether a texture is loaded.
func (t *BrushTool) HasTexture() bool { return t.texture != nil }

// Update extends the stroke while pressed and commits it on release.
//
// Each new sample is smoothed towards the previous one:
//
//	pos = last*w + raw*(1-w), w = clamp(BrushStabilization, 0, 0.95)
//
// and dabs are placed every max(BrushSize*BrushSpacing, 1) pixels.
func (t *BrushTool) Update(ctx *ToolContext, in Input) Command {
	t.ensure(ctx.Layers)

	size := ctx.Settings.BrushSize
	if in.Pressed {
		if p, ok := in.point(); ok {
			if t.state == gestureIdle {
				t.dab(p, size, ctx.Color)
				t.state = gestureDrawing
				t.last = p
			} else {
				w := num.Clamp(ctx.Settings.BrushStabilization, 0, MaxBrushStabilization)
				cur := t.last.Mul(w).Add(p.Mul(1 - w))
				t.walk(t.last, cur, size, size*ctx.Settings.BrushSpacing, ctx.Color)
				t.last = cur
			}
		}
	} else {
		t.state = gestureIdle
	}

	if in.Released {
		return t.commit(ctx, "Brush Stroke", false)
	}
	return nil
}

func (t *BrushTool) walk(a, b Point, size, step float64, col color.NRGBA) {
	stroke.Walk(a.stroke(), b.stroke(), step, func(q stroke.Point) {
		t.dab(Point(q), size, col)
	})
}

func (t *BrushTool) dab(p Point, size float64, col color.NRGBA) {
	if t.texture == nil {
		t.dot(p, size, col)
		return
	}
	stamp := t.stampFor(size)
	if stamp == nil {
		return
	}
	t.scratch.StampTexture(stamp, image.Pt(int(p.X-size), int(p.Y-size)), col)
}

// stampFor returns the texture resampled to a 2*size square, cached per size.
func (t *BrushTool) stampFor(size float64) *intImage.ImageBuf {
	side := int(size * 2)
	if side < 1 {
		return nil
	}
	if t.stamp == nil || t.stampSide != side {
		t.stamp = intImage.ScaleNearest(t.texture, side, side)
		t.stampSide = side
	}
	return t.stamp
}

func (t *BrushTool) Cursor(pos Point, s ToolSettings) []Guide {
	return []Guide{{Kind: GuideCircle, Center: pos, Radius: s.BrushSize, Color: guideWhite}}
}

func (t *BrushTool) Configure(s *ToolSettings) { s.clampBrush() }

// EraserTool clears pixels of the active layer to transparent.
// Alpha lock does not protect against erasing.
type EraserTool struct {
	capture
	last Point
}

// eraserPreview is the scratch color shown while erasing.
var eraserPreview = color.NRGBA{R: 255, G: 255, B: 255, A: 128}

// NewEraserTool creates an eraser for a width x height canvas.
func NewEraserTool(width, height int) *EraserTool {
	return &EraserTool{capture: newCapture(width, height)}
}

func (t *EraserTool) Name() string   { return "Eraser" }
func (t *EraserTool) Kind() ToolKind { return ToolEraser }

func (t *EraserTool) Update(ctx *ToolContext, in Input) Command {
	t.ensure(ctx.Layers)

	size := ctx.Settings.EraserSize
	if in.Pressed {
		if p, ok := in.point(); ok {
			if t.state == gestureIdle {
				t.dot(p, size, eraserPreview)
				t.state = gestureDrawing
			} else {
				t.segment(t.last, p, 1, size, eraserPreview)
			}
			t.last = p
		}
	} else {
		t.state = gestureIdle
	}

	if in.Released {
		return t.commit(ctx, "Erase", true)
	}
	return nil
}

func (t *EraserTool) Cursor(pos Point, s ToolSettings) []Guide {
	return []Guide{{Kind: GuideCircle, Center: pos, Radius: s.EraserSize, Color: guideRed}}
}

func (t *EraserTool) Configure(s *ToolSettings) { s.clampEraser() }
