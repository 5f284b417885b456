package image

import (
	xdraw "golang.org/x/image/draw"
)

// ScaleNearest resamples b to width x height using nearest-neighbor
// sampling. Every output pixel is an exact copy of one source pixel.
// Returns nil if either target dimension is non-positive.
func ScaleNearest(b *ImageBuf, width, height int) *ImageBuf {
	out, err := NewImageBuf(width, height)
	if err != nil {
		return nil
	}
	if width == b.width && height == b.height {
		copy(out.data, b.data)
		return out
	}
	xdraw.NearestNeighbor.Scale(out.rgbaCarrier(), out.Bounds(), b.rgbaCarrier(), b.Bounds(), xdraw.Src, nil)
	return out
}
