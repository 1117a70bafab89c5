package renderer

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/achilleasa/bvhtrace/types"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Write img to path. The encoding is selected by the file extension; png,
// jpeg, bmp and tiff are supported.
func SaveImage(path string, img image.Image) error {
	var encode func(f *os.File) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: 95}) }
	case ".bmp":
		encode = func(f *os.File) error { return bmp.Encode(f, img) }
	case ".tif", ".tiff":
		encode = func(f *os.File) error { return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate}) }
	default:
		return fmt.Errorf("renderer: unsupported image format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = encode(f); err != nil {
		f.Close()
		return fmt.Errorf("renderer: could not encode %s: %s", path, err)
	}
	return f.Close()
}

// Convert an averaged radiance value to an 8-bit channel value applying a
// gamma of 2.
func toneMap(c float32) uint8 {
	if !(c > 0) {
		return 0
	}
	v := math.Sqrt(float64(c))
	if v >= 1 {
		return 255
	}
	return uint8(255.99 * v)
}

// Resolve the accumulated frame into an image. Row 0 is the top row.
func resolve(accum []types.Vec3, frameW, frameH uint32, samples uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	scale := 1 / float32(samples)
	for i, c := range accum {
		c = c.Mul(scale)
		offset := i * 4
		img.Pix[offset] = toneMap(c[0])
		img.Pix[offset+1] = toneMap(c[1])
		img.Pix[offset+2] = toneMap(c[2])
		img.Pix[offset+3] = 255
	}
	return img
}
