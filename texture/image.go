package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/achilleasa/bvhtrace/asset"
	"github.com/achilleasa/bvhtrace/log"
	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

var ErrMissingImage = errors.New("texture: no image path specified")

// An image mapped onto a surface using nearest pixel lookups. Pixels are
// stored top row first; v = 1 maps to the top of the image.
type Image struct {
	Width  int
	Height int

	pixels []types.Vec3
}

// Load an image texture from a local path or http(s) URL. Supported
// formats are png, jpeg, bmp and tiff.
func LoadImage(pathToImage string) (*Image, error) {
	if pathToImage == "" {
		return nil, ErrMissingImage
	}

	res, err := asset.Open(pathToImage)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	img, format, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err)
	}

	tex := NewImage(img)
	log.New("texture").Infof("loaded %s image %s (%dx%d)", format, res.Path(), tex.Width, tex.Height)
	return tex, nil
}

// Create an image texture from a decoded image.
func NewImage(img image.Image) *Image {
	bounds := img.Bounds()
	tex := &Image{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		pixels: make([]types.Vec3, bounds.Dx()*bounds.Dy()),
	}

	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			tex.pixels[offset] = types.XYZ(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff)
			offset++
		}
	}

	return tex
}

func (t *Image) Value(_ scene.TextureSource, u, v float32, _ types.Vec3) types.Vec3 {
	if len(t.pixels) == 0 {
		return types.XYZ(0, 1, 1)
	}

	i := int(u * float32(t.Width))
	j := int((1-v)*float32(t.Height) - 0.001)
	i = clamp(i, 0, t.Width-1)
	j = clamp(j, 0, t.Height-1)

	return t.pixels[j*t.Width+i]
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
