// Package renderer turns a scene description into pixel colors via the
// per-pixel sampling loop, distributed across a pool of workers.
package renderer

import (
	"context"
	"errors"
	"fmt"

	"github.com/openrender/pathtracer/pkg/core"
)

// ErrInvalidConfig classifies configuration errors rejected before any
// rendering work begins
var ErrInvalidConfig = errors.New("invalid render configuration")

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Scene provides everything the renderer needs; it must be read-only for
// the duration of a render
type Scene interface {
	GetCamera() *Camera
	GetWorld() core.Hittable
	GetBackgroundColors() (top, bottom core.Vec3)
	Validate() error
}

// Config contains rendering configuration
type Config struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	TileSize        int   // Tile edge in pixels (0 = 64)
	NumWorkers      int   // Number of parallel workers (0 = CPU count)
	Seed            int64 // Base seed for the per-tile random streams
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        64,
		NumWorkers:      0, // Auto-detect CPU count
		Seed:            42,
	}
}

// Validate reports configuration errors, classified under ErrInvalidConfig
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width must be positive, got %d", ErrInvalidConfig, c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("%w: height must be positive, got %d", ErrInvalidConfig, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must be non-negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("%w: tile size must be non-negative, got %d", ErrInvalidConfig, c.TileSize)
	}
	return nil
}

// withDefaults fills in the zero-value knobs
func (c Config) withDefaults() Config {
	if c.TileSize == 0 {
		c.TileSize = 64
	}
	return c
}

// Renderer performs a one-shot render of a scene
type Renderer struct {
	scene  Scene
	config Config
	logger core.Logger
}

// NewRenderer creates a renderer, rejecting bad configuration eagerly
func NewRenderer(scene Scene, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Renderer{scene: scene, config: config.withDefaults(), logger: logger}, nil
}

// Render renders the scene and returns the finished film. A cancelled
// context aborts the render wholesale; there are no partial results.
func (r *Renderer) Render(ctx context.Context) (*Film, RenderStats, error) {
	progressive, err := NewProgressiveRenderer(r.scene, ProgressiveConfig{
		Config:         r.config,
		InitialSamples: r.config.SamplesPerPixel,
		MaxPasses:      1,
	}, r.logger)
	if err != nil {
		return nil, RenderStats{}, err
	}

	return progressive.RenderPass(ctx, 1)
}
