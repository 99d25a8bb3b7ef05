package renderer

import (
	"image/color"
	"testing"

	"github.com/openrender/pathtracer/pkg/core"
)

func TestFilm_SetGetPixel(t *testing.T) {
	film := NewFilm(4, 3)

	if film.Width() != 4 || film.Height() != 3 {
		t.Errorf("Expected 4x3 film, got %dx%d", film.Width(), film.Height())
	}

	c := core.NewVec3(0.25, 0.5, 0.75)
	film.SetPixel(2, 1, c)

	if got := film.GetPixel(2, 1); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if got := film.GetPixel(1, 2); got != (core.Vec3{}) {
		t.Errorf("Expected untouched pixel to be black, got %v", got)
	}
}

func TestFilm_Pixels_RowMajor(t *testing.T) {
	film := NewFilm(3, 2)
	c := core.NewVec3(1, 0, 0)
	film.SetPixel(1, 1, c)

	pixels := film.Pixels()
	if len(pixels) != 6 {
		t.Fatalf("Expected 6 pixels, got %d", len(pixels))
	}
	if pixels[1*3+1] != c {
		t.Errorf("Expected pixel at index 4, got %v", pixels[4])
	}
}

func TestFilm_RGBA(t *testing.T) {
	film := NewFilm(2, 2)
	film.SetPixel(0, 0, core.NewVec3(1, 0, 0))
	film.SetPixel(1, 0, core.NewVec3(0, 1, 0))
	film.SetPixel(0, 1, core.NewVec3(0, 0, 0.5))
	film.SetPixel(1, 1, core.NewVec3(2, -1, 1)) // Out of range, must clamp

	img := film.RGBA()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("Expected 2x2 image, got %v", img.Bounds())
	}

	tests := []struct {
		x, y     int
		expected color.RGBA
	}{
		{0, 0, color.RGBA{R: 255, A: 255}},
		{1, 0, color.RGBA{G: 255, A: 255}},
		{0, 1, color.RGBA{B: 127, A: 255}},
		{1, 1, color.RGBA{R: 255, B: 255, A: 255}},
	}

	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.expected {
			t.Errorf("Pixel (%d,%d): expected %v, got %v", tt.x, tt.y, tt.expected, got)
		}
	}
}

func TestFinalizeColor(t *testing.T) {
	tests := []struct {
		name     string
		in       core.Vec3
		expected core.Vec3
	}{
		{"quarter brightens to half", core.NewVec3(0.25, 0.25, 0.25), core.NewVec3(0.5, 0.5, 0.5)},
		{"overbright clamps before gamma", core.NewVec3(4, 4, 4), core.NewVec3(1, 1, 1)},
		{"negative clamps to black", core.NewVec3(-2, -0.5, -0.01), core.Vec3{}},
		{"black stays black", core.Vec3{}, core.Vec3{}},
		{"white stays white", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finalizeColor(tt.in)
			if got.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestQuantizeColor(t *testing.T) {
	got := quantizeColor(core.NewVec3(0, 0.5, 1))
	expected := color.RGBA{R: 0, G: 127, B: 255, A: 255}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
