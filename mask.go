package arspaint

import (
	"image"
	"image/color"
)

// Selected and Unselected are the only values selection tools write.
const (
	Selected   uint8 = 255
	Unselected uint8 = 0
)

// Mask is a single-channel canvas-sized selection buffer.
// Nonzero values are selected.
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates an empty mask with the given dimensions.
// Non-positive dimensions produce an empty 0x0 mask.
func NewMask(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Selected reports whether (x, y) is selected.
func (m *Mask) Selected(x, y int) bool {
	return m.At(x, y) > 0
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// FillRect sets every value inside r, clipped to the mask.
func (m *Mask) FillRect(r image.Rectangle, value uint8) {
	r = r.Intersect(m.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := m.data[y*m.width+r.Min.X : y*m.width+r.Max.X]
		for i := range row {
			row[i] = value
		}
	}
}

// Clear clears the mask (sets all values to 0).
func (m *Mask) Clear() {
	clear(m.data)
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.width, m.height)
	copy(clone.data, m.data)
	return clone
}

// SelectedBounds returns the tight bounding box of the selected values.
// ok is false when nothing is selected.
func (m *Mask) SelectedBounds() (r image.Rectangle, ok bool) {
	minX, minY := m.width, m.height
	maxX, maxY := -1, -1
	for y := range m.height {
		row := m.data[y*m.width : (y+1)*m.width]
		for x, v := range row {
			if v == 0 {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Overlay renders the mask as an NRGBA image: selected pixels take tint,
// with tint's alpha scaled by the mask value, and the rest is transparent.
func (m *Mask) Overlay(tint color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(m.Bounds())
	for i, v := range m.data {
		if v == 0 {
			continue
		}
		p := img.Pix[i*4 : i*4+4 : i*4+4]
		p[0], p[1], p[2] = tint.R, tint.G, tint.B
		p[3] = uint8(uint16(tint.A) * uint16(v) / 255)
	}
	return img
}

// Selection holds the document's optional selection mask.
// The zero value has no selection.
type Selection struct {
	mask *Mask
}

// Mask returns the current mask, or nil when nothing is selected.
func (s *Selection) Mask() *Mask { return s.mask }

// Active reports whether a mask is present.
func (s *Selection) Active() bool { return s.mask != nil }

// Replace installs m as the selection, discarding any previous one.
// A nil mask clears the selection.
func (s *Selection) Replace(m *Mask) { s.mask = m }

// Clear removes the selection.
func (s *Selection) Clear() { s.mask = nil }
