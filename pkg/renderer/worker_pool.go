package renderer

import (
	"context"
	"runtime"
	"sync"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile          *Tile
	TargetSamples int
	PixelStats    [][]PixelStats // Shared pixel stats array to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TileID       int
	SamplesTaken int
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	tracer      *tileRenderer
	numWorkers  int
	ctx         context.Context
	wg          sync.WaitGroup
}

// newWorkerPool creates a worker pool sized to the CPU count by default.
// Queues are buffered for all tiles so workers never block on results.
func newWorkerPool(ctx context.Context, tracer *tileRenderer, maxTiles, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		tracer:      tracer,
		numWorkers:  numWorkers,
		ctx:         ctx,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// Stop shuts down all workers after the queued tasks drain or the
// context is cancelled
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// Results exposes the result channel for select-based consumption
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. Cancellation is checked between tiles;
// a tile in progress always completes.
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for {
		select {
		case <-wp.ctx.Done():
			return
		case task, ok := <-wp.taskQueue:
			if !ok {
				return
			}
			samples := wp.tracer.renderBounds(task.Tile.Bounds, task.PixelStats, task.Tile.Random, task.TargetSamples)
			wp.resultQueue <- TileResult{TileID: task.Tile.ID, SamplesTaken: samples}
		}
	}
}
