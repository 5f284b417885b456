package arspaint

import (
	"image"
	"image/color"

	"github.com/gogpu/arspaint/internal/stroke"
)

// gesture is the state of a stroke-capture tool between ticks.
type gesture uint8

const (
	// gestureIdle: no button held. Scratch pixels may still be waiting
	// for the release tick.
	gestureIdle gesture = iota
	// gestureDrawing: the button is held and the stroke is being extended.
	gestureDrawing
)

// capture is the scratch state shared by the brush, eraser and shape tools.
type capture struct {
	scratch *stroke.Scratch
	state   gesture
}

func newCapture(width, height int) capture {
	return capture{scratch: stroke.NewScratch(width, height)}
}

// ensure follows canvas resizes. An in-flight stroke is lost.
func (c *capture) ensure(s *LayerStack) {
	if c.scratch.Ensure(s.Width(), s.Height()) {
		c.state = gestureIdle
	}
}

func (c *capture) dot(p Point, radius float64, col color.NRGBA) {
	c.scratch.StampCircle(p.stroke(), radius, col)
}

// segment stamps circles from a to b inclusive, step pixels apart.
func (c *capture) segment(a, b Point, step, radius float64, col color.NRGBA) {
	stroke.Walk(a.stroke(), b.stroke(), step, func(q stroke.Point) {
		c.scratch.StampCircle(q, radius, col)
	})
}

// commit writes the scratch into the active layer and returns the patch
// command. The gesture is reset whether or not anything was written.
// Locked layers and vector layers drop the stroke.
func (c *capture) commit(ctx *ToolContext, name string, erase bool) Command {
	c.state = gestureIdle
	if !c.scratch.HasDirty() {
		return nil
	}

	idx := ctx.Layers.ActiveIndex()
	layer := ctx.Layers.ActiveLayer()
	buf := rasterBuffer(layer)
	if buf == nil || layer.locked {
		Logger().Debug("stroke discarded", "tool", name, "layer", idx)
		c.scratch.Discard()
		return nil
	}

	patch, ok := c.scratch.Commit(buf, stroke.CommitOptions{
		AlphaLocked: layer.alphaLocked,
		Erase:       erase,
	})
	if !ok {
		return nil
	}
	ctx.Layers.MarkDirty()
	return newPatchCommand(name, idx, patch)
}

// Preview returns the scratch buffer while the gesture has touched pixels.
func (c *capture) Preview() *image.NRGBA {
	if !c.scratch.HasDirty() {
		return nil
	}
	return c.scratch.Buffer().NRGBA()
}

// Abort drops the stroke in progress.
func (c *capture) Abort(*LayerStack) {
	c.scratch.Discard()
	c.state = gestureIdle
}
