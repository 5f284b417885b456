// Package stroke implements stroke capture for the painting tools.
//
// A Scratch is a canvas-sized transient RGBA buffer that a tool stamps into
// while a gesture is in progress. Every stamp grows the scratch's dirty
// rectangle, the bounding box of all pixels touched since the last commit.
// On release the tool calls Commit, which writes the scratch pixels inside
// the dirty rectangle into the target layer buffer and returns the before
// and after blocks of that rectangle as an undo patch.
//
// # Stamping
//
// Stamps are hard-edged filled circles tested by squared distance against an
// integer radius, or a pre-resampled texture merged with max-alpha. Segments
// between samples are walked at a fixed spacing with a stamp at each step:
//
//	s := stroke.NewScratch(w, h)
//	stroke.Walk(p0, p1, 1, func(p stroke.Point) {
//	    s.StampCircle(p, radius, c)
//	})
//	patch, ok := s.Commit(layerBuf, stroke.CommitOptions{})
//
// # Commit semantics
//
//   - Painting writes the scratch color. With alpha lock, only pixels whose
//     existing alpha is nonzero are touched and they keep that alpha.
//   - Erasing clears target pixels to transparent and ignores alpha lock.
//   - Committed scratch pixels are cleared and the dirty rectangle is reset.
package stroke
