package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/openrender/pathtracer/pkg/core"
	"github.com/openrender/pathtracer/pkg/integrator"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	Config
	InitialSamples int // Samples for the first pass (1 recommended)
	MaxPasses      int // Number of passes over the image
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		Config:         DefaultConfig(),
		InitialSamples: 1,
		MaxPasses:      7,
	}
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Film       *Film
	Stats      RenderStats
	IsLast     bool
}

// ProgressiveRenderer renders a scene over multiple passes, accumulating
// samples so each pass refines the previous image. Work is partitioned
// into tiles and resumable between passes without recomputation.
type ProgressiveRenderer struct {
	scene      Scene
	config     ProgressiveConfig
	logger     core.Logger
	tracer     *tileRenderer
	tiles      []*Tile
	pixelStats [][]PixelStats
}

// NewProgressiveRenderer creates a progressive renderer, rejecting bad
// configuration eagerly
func NewProgressiveRenderer(scene Scene, config ProgressiveConfig, logger core.Logger) (*ProgressiveRenderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.InitialSamples <= 0 {
		return nil, fmt.Errorf("%w: initial samples must be positive, got %d", ErrInvalidConfig, config.InitialSamples)
	}
	if config.MaxPasses <= 0 {
		return nil, fmt.Errorf("%w: max passes must be positive, got %d", ErrInvalidConfig, config.MaxPasses)
	}
	if err := scene.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	config.Config = config.Config.withDefaults()

	top, bottom := scene.GetBackgroundColors()
	tracer := &tileRenderer{
		world:      scene.GetWorld(),
		camera:     scene.GetCamera(),
		integrator: integrator.NewPathTracer(config.MaxDepth, integrator.Gradient{Top: top, Bottom: bottom}),
		width:      config.Width,
		height:     config.Height,
	}

	pixelStats := make([][]PixelStats, config.Height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, config.Width)
	}

	return &ProgressiveRenderer{
		scene:      scene,
		config:     config,
		logger:     logger,
		tracer:     tracer,
		tiles:      NewTileGrid(config.Width, config.Height, config.TileSize, config.Seed),
		pixelStats: pixelStats,
	}, nil
}

// samplesForPass calculates the target total samples per pixel for a pass
func (pr *ProgressiveRenderer) samplesForPass(passNumber int) int {
	if pr.config.MaxPasses == 1 {
		return pr.config.SamplesPerPixel
	}

	// First pass is a quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Divide the remaining budget evenly across the remaining passes
	remainingSamples := pr.config.SamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	targetSamples := pr.config.InitialSamples + (passNumber-1)*samplesPerPass

	// The final pass takes whatever is left
	if passNumber == pr.config.MaxPasses {
		targetSamples = pr.config.SamplesPerPixel
	}

	return targetSamples
}

// RenderPass renders a single pass in parallel and returns a snapshot of
// the accumulated image
func (pr *ProgressiveRenderer) RenderPass(ctx context.Context, passNumber int) (*Film, RenderStats, error) {
	targetSamples := pr.samplesForPass(passNumber)

	pool := newWorkerPool(ctx, pr.tracer, len(pr.tiles), pr.config.NumWorkers)
	pool.Start()
	defer pool.Stop()

	for _, tile := range pr.tiles {
		pool.SubmitTask(TileTask{
			Tile:          tile,
			TargetSamples: targetSamples,
			PixelStats:    pr.pixelStats,
		})
	}

	for range pr.tiles {
		select {
		case <-ctx.Done():
			return nil, RenderStats{}, ctx.Err()
		case _, ok := <-pool.Results():
			if !ok {
				return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
			}
		}
	}

	film, stats := pr.snapshot(targetSamples)
	return film, stats, nil
}

// RenderProgressive runs all passes, delivering each pass over the
// returned channels. The error channel receives at most one error.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.logger.Printf("Starting progressive render: %d passes, %d samples/pixel\n",
			pr.config.MaxPasses, pr.config.SamplesPerPixel)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			film, stats, err := pr.RenderPass(ctx, pass)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%.1f samples/pixel)\n",
				pass, time.Since(startTime), stats.AverageSamples)

			result := PassResult{
				PassNumber: pass,
				Film:       film,
				Stats:      stats,
				IsLast:     pass == pr.config.MaxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}

// NumTiles returns the number of tiles in the grid
func (pr *ProgressiveRenderer) NumTiles() int {
	return len(pr.tiles)
}

// RenderTile renders a single tile up to the target sample count on the
// calling goroutine. It exists for hosts that disallow long unbroken
// synchronous execution and must yield between chunks of work; tiles can
// be rendered in any order and re-rendered with a higher target without
// recomputing earlier samples.
func (pr *ProgressiveRenderer) RenderTile(tileIndex, targetSamples int) {
	tile := pr.tiles[tileIndex]
	pr.tracer.renderBounds(tile.Bounds, pr.pixelStats, tile.Random, targetSamples)
}

// Snapshot returns the current accumulated image and its statistics
func (pr *ProgressiveRenderer) Snapshot() (*Film, RenderStats) {
	return pr.snapshot(pr.config.SamplesPerPixel)
}

// snapshot builds a film and render statistics from the accumulated
// pixel stats
func (pr *ProgressiveRenderer) snapshot(targetSamples int) (*Film, RenderStats) {
	film := NewFilm(pr.config.Width, pr.config.Height)

	stats := RenderStats{
		TotalPixels: pr.config.Width * pr.config.Height,
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for y := 0; y < pr.config.Height; y++ {
		for x := 0; x < pr.config.Width; x++ {
			ps := &pr.pixelStats[y][x]
			film.SetPixel(x, y, finalizeColor(ps.Color()))

			stats.TotalSamples += ps.SampleCount
			stats.MinSamples = min(stats.MinSamples, ps.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, ps.SampleCount)
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return film, stats
}
