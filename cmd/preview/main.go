// Command preview renders a scene progressively and displays each pass in
// an SDL2 window as it completes. Closing the window cancels the render.
package main

import (
	"context"
	"flag"
	"image"
	"log"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/openrender/pathtracer/pkg/renderer"
	"github.com/openrender/pathtracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'cover'")
	width := flag.Int("width", 640, "Window and image width in pixels")
	height := flag.Int("height", 360, "Window and image height in pixels")
	samples := flag.Int("samples", 100, "Samples per pixel")
	depth := flag.Int("depth", 50, "Maximum ray bounce depth")
	passes := flag.Int("passes", 7, "Number of progressive passes")
	flag.Parse()

	if err := run(*sceneType, *width, *height, *samples, *depth, *passes); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run(sceneType string, width, height, samples, depth, passes int) error {
	var selectedScene *scene.Scene
	var err error
	switch sceneType {
	case "cover":
		selectedScene, err = scene.NewCoverScene(float64(width)/float64(height), 42)
	default:
		selectedScene, err = scene.NewDefaultScene(float64(width) / float64(height))
	}
	if err != nil {
		return err
	}

	progressive, err := renderer.NewProgressiveRenderer(selectedScene, renderer.ProgressiveConfig{
		Config: renderer.Config{
			Width:           width,
			Height:          height,
			SamplesPerPixel: samples,
			MaxDepth:        depth,
			Seed:            42,
		},
		InitialSamples: 1,
		MaxPasses:      passes,
	}, nil)
	if err != nil {
		return err
	}

	// Start SDL2 and a window sized to the image
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("Path Tracer Preview",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		return err
	}
	defer window.Destroy()

	surface, err := window.GetSurface()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	passChan, errChan := progressive.RenderProgressive(ctx)

	// Input/update/render loop: blit passes as they arrive, quit on
	// window close
	for running := true; running; {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				cancel()
				running = false
			}
		}

		select {
		case result, ok := <-passChan:
			if !ok {
				// Render finished; keep the window open until quit
				passChan = nil
				break
			}
			blit(surface, result.Film.RGBA())
			window.UpdateSurface()
			log.Printf("Pass %d/%d (%.1f samples/pixel)",
				result.PassNumber, passes, result.Stats.AverageSamples)
		default:
		}

		sdl.Delay(16)
	}

	if err := <-errChan; err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// blit copies an image onto the window surface pixel by pixel
func blit(surface *sdl.Surface, img *image.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			surface.Set(x, y, img.RGBAAt(x, y))
		}
	}
}
