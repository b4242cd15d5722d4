package assets

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// LoadImage decodes the image file at path in any registered format: PNG,
// JPEG, GIF, BMP or WebP.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes r and reports the detected format name.
func DecodeImage(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// ToRGBA returns img as an *image.RGBA anchored at the origin with tightly
// packed rows. Images already in that shape are returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) && m.Stride == m.Rect.Dx()*4 {
		return m
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Pixels returns width, height and RGBA8 pixels in row-major order with a
// top-left origin, ready for a texture upload.
func Pixels(img image.Image) (w, h int, rgba []byte) {
	m := ToRGBA(img)
	return m.Rect.Dx(), m.Rect.Dy(), m.Pix
}
