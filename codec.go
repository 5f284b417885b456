package arspaint

import (
	"image"

	intImage "github.com/gogpu/arspaint/internal/image"
)

// Codec decodes images into pixels and encodes the composite to files.
type Codec interface {
	// Decode parses an encoded image.
	Decode(data []byte) (*image.NRGBA, error)
	// Encode writes img to path, choosing the format from the extension.
	Encode(img *image.NRGBA, path string) error
}

// DefaultCodec returns the built-in codec. It decodes PNG, JPEG, GIF, BMP,
// TIFF and WebP and encodes PNG, JPEG, BMP and TIFF.
func DefaultCodec() Codec {
	return fileCodec{}
}

type fileCodec struct{}

func (fileCodec) Decode(data []byte) (*image.NRGBA, error) {
	buf, err := intImage.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	return buf.NRGBA(), nil
}

func (fileCodec) Encode(img *image.NRGBA, path string) error {
	buf := intImage.FromNRGBA(img)
	if buf == nil {
		return ErrInvalidDimensions
	}
	return intImage.Save(buf, path)
}
