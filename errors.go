package arspaint

import (
	"errors"

	intImage "github.com/gogpu/arspaint/internal/image"
)

// Errors returned by document construction and image I/O.
var (
	// ErrInvalidDimensions is returned when a canvas width or height is non-positive.
	ErrInvalidDimensions = intImage.ErrInvalidDimensions

	// ErrUnsupportedFormat is returned when a file extension or encoding
	// has no codec.
	ErrUnsupportedFormat = intImage.ErrUnsupportedFormat

	// ErrEmptyData is returned when decoding an empty byte slice.
	ErrEmptyData = intImage.ErrEmptyData

	// ErrNoRasterLayer is returned when an operation needs pixel data but the
	// layer is a vector layer or the index is out of range.
	ErrNoRasterLayer = errors.New("arspaint: layer has no raster buffer")
)
