// Package asset decodes images, shader sources and fonts into the tightly
// packed forms the OpenGL backend uploads.
package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Image is tightly packed RGBA8 pixels, row-major with the bottom row first.
type Image struct {
	Width, Height int
	Pix           []byte
}

// LoadImage reads and decodes an image file.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes a PNG, JPEG, BMP or WebP stream and flips it vertically
// to match OpenGL's bottom-left texture origin.
func DecodeImage(r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	rgba := imageToRGBA(src)
	w, h := rgba.Bounds().Dx(), rgba.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("empty %s image", format)
	}

	// Repack in tight rows (stride == 4*w), last source row first.
	out := make([]byte, w*h*4)
	row := w * 4
	for y := 0; y < h; y++ {
		srcOff := (h - 1 - y) * rgba.Stride
		copy(out[y*row:(y+1)*row], rgba.Pix[srcOff:srcOff+row])
	}
	return &Image{Width: w, Height: h, Pix: out}, nil
}

// Solid returns a 1x1 image of c.
func Solid(c [4]uint8) *Image {
	return &Image{Width: 1, Height: 1, Pix: bytes.Clone(c[:])}
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
