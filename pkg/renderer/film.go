package renderer

import (
	"image"
	"image/color"

	"github.com/openrender/pathtracer/pkg/core"
)

// Film is the output pixel grid. The renderer writes each pixel exactly
// once, after all samples for that pixel are accumulated; the film itself
// does no computation.
//
// Stored colors are the final gamma-corrected values in [0,1]; only RGBA
// quantizes to 8 bits.
type Film struct {
	width  int
	height int
	pixels []core.Vec3 // Row-major, y*width+x
}

// NewFilm creates a film with the given dimensions
func NewFilm(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the image width in pixels
func (f *Film) Width() int { return f.width }

// Height returns the image height in pixels
func (f *Film) Height() int { return f.height }

// SetPixel stores the color for pixel (x, y)
func (f *Film) SetPixel(x, y int, c core.Vec3) {
	f.pixels[y*f.width+x] = c
}

// GetPixel returns the stored color for pixel (x, y)
func (f *Film) GetPixel(x, y int) core.Vec3 {
	return f.pixels[y*f.width+x]
}

// Pixels returns the underlying row-major pixel slice for bulk export
func (f *Film) Pixels() []core.Vec3 {
	return f.pixels
}

// RGBA quantizes the film to an 8-bit RGBA image for encoders
func (f *Film) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, y, quantizeColor(f.GetPixel(x, y)))
		}
	}
	return img
}

// quantizeColor converts a [0,1] color to 8-bit RGBA
func quantizeColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// finalizeColor maps an averaged sample color to its stored film value:
// clamp to [0,1], then gamma-2 correction
func finalizeColor(c core.Vec3) core.Vec3 {
	return c.Clamp(0.0, 1.0).GammaCorrect(2.0)
}
