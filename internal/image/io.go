package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// jpegQuality is used for every JPEG export.
const jpegQuality = 95

// Decode decodes an image from the given reader, auto-detecting the format.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognized.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	buf := FromStdImage(img)
	if buf == nil {
		return nil, ErrInvalidDimensions
	}
	return buf, nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*ImageBuf, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// FromStdImage converts any image.Image to a straight-alpha RGBA8 buffer.
// Returns nil for an empty image.
func FromStdImage(img image.Image) *ImageBuf {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return FromNRGBA(nrgba)
	}

	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil
	}
	// Src into an NRGBA destination un-premultiplies through the color model.
	xdraw.Draw(buf.NRGBA(), buf.Bounds(), img, bounds.Min, xdraw.Src)
	return buf
}

// Encode writes the buffer to w in the named format
// ("png", "jpeg", "bmp" or "tiff").
func Encode(w io.Writer, b *ImageBuf, format string) error {
	img := b.NRGBA()
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "bmp":
		err = bmp.Encode(w, img)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("image: encode %s: %w", format, err)
	}
	return nil
}

// FormatForPath maps a file extension to an encoder name.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".jpg", ".jpeg":
		return "jpeg", nil
	case ".bmp":
		return "bmp", nil
	case ".tif", ".tiff":
		return "tiff", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Save encodes the buffer to path, choosing the format from the extension.
// The file is not created when the extension is unsupported.
func Save(b *ImageBuf, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, b, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
