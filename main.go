package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/openrender/pathtracer/pkg/renderer"
	"github.com/openrender/pathtracer/pkg/scene"
)

func main() {
	sceneType := flag.String("scene", "default", "Scene type: 'default' or 'cover'")
	width := flag.Int("width", 400, "Image width in pixels")
	height := flag.Int("height", 225, "Image height in pixels")
	samples := flag.Int("samples", 100, "Samples per pixel")
	depth := flag.Int("depth", 50, "Maximum ray bounce depth")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	seed := flag.Int64("seed", 42, "Base random seed")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Path Tracer")
		fmt.Println("Usage: pathtracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		fmt.Println("  default - Diffuse, hollow glass, and metal spheres on a ground sphere")
		fmt.Println("  cover   - Random sphere field with depth of field")
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	selectedScene, err := createScene(*sceneType, float64(*width)/float64(*height), *seed)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	config := renderer.Config{
		Width:           *width,
		Height:          *height,
		SamplesPerPixel: *samples,
		MaxDepth:        *depth,
		NumWorkers:      *workers,
		Seed:            *seed,
	}

	r, err := renderer.NewRenderer(selectedScene, config, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error configuring renderer: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rendering %s scene at %dx%d, %d samples/pixel...\n", *sceneType, *width, *height, *samples)

	startTime := time.Now()
	film, stats, err := r.Render(context.Background())
	if err != nil {
		fmt.Printf("Render failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render completed in %v (%.1f samples/pixel)\n", time.Since(startTime), stats.AverageSamples)

	outputDir := filepath.Join("output", *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	if err := png.Encode(file, film.RGBA()); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

// createScene creates a scene by name
func createScene(sceneType string, aspectRatio float64, seed int64) (*scene.Scene, error) {
	switch sceneType {
	case "default":
		return scene.NewDefaultScene(aspectRatio)
	case "cover":
		return scene.NewCoverScene(aspectRatio, seed)
	default:
		return nil, fmt.Errorf("unknown scene type: %q", sceneType)
	}
}
