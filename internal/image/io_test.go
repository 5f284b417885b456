package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func testPattern(t *testing.T) *ImageBuf {
	t.Helper()
	buf, err := NewImageBuf(6, 4)
	if err != nil {
		t.Fatalf("NewImageBuf: %v", err)
	}
	for y := range 4 {
		for x := range 6 {
			buf.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 60), B: 90, A: 255})
		}
	}
	return buf
}

func TestEncodeDecodeLossless(t *testing.T) {
	for _, format := range []string{"png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			buf := testPattern(t)
			var out bytes.Buffer
			if err := Encode(&out, buf, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := DecodeBytes(out.Bytes())
			if err != nil {
				t.Fatalf("DecodeBytes() error = %v", err)
			}
			if !got.Equal(buf) {
				t.Errorf("%s round trip changed pixels", format)
			}
		})
	}
}

func TestEncodeJPEG(t *testing.T) {
	var out bytes.Buffer
	if err := Encode(&out, testPattern(t), "jpeg"); err != nil {
		t.Fatalf("Encode(jpeg) error = %v", err)
	}
	got, err := DecodeBytes(out.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if got.Width() != 6 || got.Height() != 4 {
		t.Errorf("size = %dx%d, want 6x4", got.Width(), got.Height())
	}
	if a := got.Alpha(3, 2); a != 255 {
		t.Errorf("JPEG decode alpha = %d, want 255", a)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testPattern(t), "xcf")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(xcf) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("DecodeBytes(nil) error = %v, want ErrEmptyData", err)
	}
	if _, err := DecodeBytes([]byte("not an image")); err == nil {
		t.Error("DecodeBytes(garbage) should fail")
	}
}

func TestDecodeConvertsPremultiplied(t *testing.T) {
	// image.RGBA is premultiplied; half-transparent white is stored as 128,128,128,128.
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 128, G: 128, B: 128, A: 128})
	var out bytes.Buffer
	if err := png.Encode(&out, src); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}

	got, err := DecodeBytes(out.Bytes())
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	c := got.At(0, 0)
	if c.A != 128 || c.R < 250 {
		t.Errorf("At(0,0) = %v, want straight-alpha white at A=128", c)
	}
}

func TestSaveAndDecode(t *testing.T) {
	dir := t.TempDir()
	buf := testPattern(t)

	path := filepath.Join(dir, "out.png")
	if err := Save(buf, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes() error = %v", err)
	}
	if !got.Equal(buf) {
		t.Error("Save/decode round trip changed pixels")
	}

	bad := filepath.Join(dir, "out.xyz")
	if err := Save(buf, bad); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("Save() created a file for an unsupported extension")
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.png", "png"},
		{"a.PNG", "png"},
		{"a.jpg", "jpeg"},
		{"a.jpeg", "jpeg"},
		{"a.bmp", "bmp"},
		{"a.tif", "tiff"},
		{"a.tiff", "tiff"},
	}
	for _, tt := range tests {
		got, err := FormatForPath(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("FormatForPath(%q) = %q, %v, want %q", tt.path, got, err, tt.want)
		}
	}
}
