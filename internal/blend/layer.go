package blend

import (
	"image/color"

	"github.com/gogpu/arspaint/internal/image"
)

// Layer composites src onto dst with the given opacity and mode.
//
// mask is optional. When present, its alpha channel scales the source alpha
// per pixel. Only the region common to dst, src and mask is visited; pixels
// of dst outside it are left unchanged.
func Layer(dst, src, mask *image.ImageBuf, opacity float64, mode Mode) {
	if dst == nil || src == nil || opacity <= 0 {
		return
	}
	w := min(dst.Width(), src.Width())
	h := min(dst.Height(), src.Height())
	if mask != nil {
		w = min(w, mask.Width())
		h = min(h, mask.Height())
	}

	const bpp = image.BytesPerPixel
	for y := range h {
		drow := dst.RowBytes(y)
		srow := src.RowBytes(y)
		var mrow []byte
		if mask != nil {
			mrow = mask.RowBytes(y)
		}
		for x := range w {
			i := x * bpp
			if srow[i+3] == 0 {
				continue
			}
			alpha := opacity
			if mrow != nil {
				ma := mrow[i+3]
				if ma == 0 {
					continue
				}
				alpha *= float64(ma) / 255
			}
			d := color.NRGBA{R: drow[i], G: drow[i+1], B: drow[i+2], A: drow[i+3]}
			s := color.NRGBA{R: srow[i], G: srow[i+1], B: srow[i+2], A: srow[i+3]}
			out := Over(d, s, alpha, mode)
			drow[i], drow[i+1], drow[i+2], drow[i+3] = out.R, out.G, out.B, out.A
		}
	}
}
