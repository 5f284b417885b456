package arspaint

import (
	"image"

	"github.com/gogpu/arspaint/internal/blend"
	intImage "github.com/gogpu/arspaint/internal/image"
)

// Composite flattens layers, bottom first, into a new width x height image.
//
// Hidden layers are skipped. A clipped layer above the bottom is masked by
// the alpha of the layer directly below it; a vector layer below acts as no
// mask. Vector layers are not rendered. Returns nil if width or height is
// non-positive.
func Composite(width, height int, layers []*Layer) *image.NRGBA {
	buf := composite(width, height, layers)
	if buf == nil {
		return nil
	}
	return buf.NRGBA()
}

func composite(width, height int, layers []*Layer) *intImage.ImageBuf {
	acc := intImage.GetFromDefault(width, height)
	if acc == nil {
		return nil
	}
	for i, l := range layers {
		if l == nil || !l.visible {
			continue
		}
		src := rasterBuffer(l)
		if src == nil {
			continue
		}
		var mask *intImage.ImageBuf
		if l.clipped && i > 0 {
			mask = rasterBuffer(layers[i-1])
		}
		blend.Layer(acc, src, mask, l.opacity, l.blend.mode())
	}
	return acc
}
