package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// ImageData is a decoded texture in linear [0,1] RGB, row-major.
// Source texels are sRGB encoded.
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage decodes a PNG or JPEG file
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	return FromImage(img), nil
}

// FromImage converts any image to ImageData
func FromImage(img image.Image) *ImageData {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewVec3(
				core.SRGBToLinear(float64(r)/65535.0),
				core.SRGBToLinear(float64(g)/65535.0),
				core.SRGBToLinear(float64(b)/65535.0),
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Average returns the mean color, black for an empty image
func (d *ImageData) Average() core.Vec3 {
	if len(d.Pixels) == 0 {
		return core.Vec3{}
	}
	var sum core.Vec3
	for _, p := range d.Pixels {
		sum = sum.Add(p)
	}
	return sum.Multiply(1 / float64(len(d.Pixels)))
}

// AverageColor loads a texture and returns its mean color
func AverageColor(filename string) (core.Vec3, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return core.Vec3{}, err
	}
	return data.Average(), nil
}
