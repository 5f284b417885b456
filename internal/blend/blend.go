// Package blend provides per-pixel layer blending in straight-alpha space.
package blend

import (
	"image/color"
	"math"

	"github.com/gogpu/arspaint/internal/num"
)

// Over composites src onto dst using the "over" operator after mixing the
// colors with mode.
//
// alpha scales the source alpha; callers pass layer opacity multiplied by
// any clip-mask coverage. When the effective source alpha is zero or less,
// dst is returned unchanged.
//
//	sa   = src.A/255 * alpha
//	outA = sa + da*(1-sa)
//	outC = (mix(src, dst)*sa + dst*da*(1-sa)) / outA
func Over(dst, src color.NRGBA, alpha float64, mode Mode) color.NRGBA {
	sa := float64(src.A) / 255 * alpha
	if sa <= 0 {
		return dst
	}
	if sa > 1 {
		sa = 1
	}
	da := float64(dst.A) / 255
	outA := sa + da*(1-sa)
	if outA <= 0 {
		return color.NRGBA{}
	}

	w := da * (1 - sa)
	return color.NRGBA{
		R: toByte((mode.mix(src.R, dst.R)*sa + float64(dst.R)*w) / outA),
		G: toByte((mode.mix(src.G, dst.G)*sa + float64(dst.G)*w) / outA),
		B: toByte((mode.mix(src.B, dst.B)*sa + float64(dst.B)*w) / outA),
		A: toByte(outA * 255),
	}
}

// toByte rounds to the nearest integer and clamps to [0, 255].
func toByte(v float64) uint8 {
	return uint8(num.Clamp(math.Round(v), 0, 255))
}
