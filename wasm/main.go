//go:build js && wasm

// Command wasm exposes the renderer to a browser host. The one-shot
// render call returns a raw RGBA buffer; the initRender/renderTile/pixels
// trio renders cooperatively, one tile per call, for hosts that disallow
// long unbroken synchronous execution.
package main

import (
	"syscall/js"

	"github.com/openrender/pathtracer/pkg/renderer"
	"github.com/openrender/pathtracer/pkg/scene"
)

var currentScene = "default"

// renderState holds the in-progress chunked render
var renderState struct {
	progressive *renderer.ProgressiveRenderer
	samples     int
	totalTiles  int
	nextTile    int
	initialized bool
}

func main() {
	js.Global().Set("ptSetScene", setScene())
	js.Global().Set("ptRender", render())
	js.Global().Set("ptInitRender", initRender())
	js.Global().Set("ptRenderTile", renderTile())
	js.Global().Set("ptPixels", pixels())

	// Keep the Go runtime alive for callbacks
	select {}
}

// setScene selects the scene used by subsequent render calls
func setScene() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return false
		}
		currentScene = args[0].String()
		return true
	})
}

// renderArgs reads (width, height, samples, depth) with defaults
func renderArgs(args []js.Value) (width, height, samples, depth int) {
	width, height, samples, depth = 200, 112, 10, 10
	if len(args) >= 1 {
		width = args[0].Int()
	}
	if len(args) >= 2 {
		height = args[1].Int()
	}
	if len(args) >= 3 {
		samples = args[2].Int()
	}
	if len(args) >= 4 {
		depth = args[3].Int()
	}
	return
}

// newProgressive builds a single-pass progressive renderer for the
// current scene. The browser runtime is single-threaded, so one worker.
func newProgressive(width, height, samples, depth int) (*renderer.ProgressiveRenderer, error) {
	sceneObj, err := createScene(currentScene, float64(width)/float64(height))
	if err != nil {
		return nil, err
	}

	return renderer.NewProgressiveRenderer(sceneObj, renderer.ProgressiveConfig{
		Config: renderer.Config{
			Width:           width,
			Height:          height,
			SamplesPerPixel: samples,
			MaxDepth:        depth,
			NumWorkers:      1,
			Seed:            42,
		},
		InitialSamples: samples,
		MaxPasses:      1,
	}, nil)
}

// render renders the current scene synchronously and returns the RGBA
// pixel buffer as a Uint8ClampedArray
func render() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		width, height, samples, depth := renderArgs(args)

		progressive, err := newProgressive(width, height, samples, depth)
		if err != nil {
			return jsError(err)
		}

		for i := 0; i < progressive.NumTiles(); i++ {
			progressive.RenderTile(i, samples)
		}

		film, _ := progressive.Snapshot()
		return pixelArray(film)
	})
}

// initRender prepares a chunked render and returns the number of tiles
func initRender() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		width, height, samples, depth := renderArgs(args)

		progressive, err := newProgressive(width, height, samples, depth)
		if err != nil {
			return jsError(err)
		}

		renderState.progressive = progressive
		renderState.samples = samples
		renderState.totalTiles = progressive.NumTiles()
		renderState.nextTile = 0
		renderState.initialized = true

		return map[string]interface{}{
			"totalTiles": renderState.totalTiles,
		}
	})
}

// renderTile renders the next tile and returns the fraction of tiles
// completed, or -1 if initRender has not been called
func renderTile() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if !renderState.initialized {
			return -1
		}
		if renderState.nextTile < renderState.totalTiles {
			renderState.progressive.RenderTile(renderState.nextTile, renderState.samples)
			renderState.nextTile++
		}
		return float64(renderState.nextTile) / float64(renderState.totalTiles)
	})
}

// pixels returns the accumulated RGBA buffer for display
func pixels() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if !renderState.initialized {
			return js.Null()
		}
		film, _ := renderState.progressive.Snapshot()
		return pixelArray(film)
	})
}

// pixelArray copies the film's RGBA bytes into a Uint8ClampedArray
func pixelArray(film *renderer.Film) js.Value {
	pix := film.RGBA().Pix
	jsArray := js.Global().Get("Uint8ClampedArray").New(len(pix))
	js.CopyBytesToJS(jsArray, pix)
	return jsArray
}

// jsError surfaces a Go error to the host as {error: message}
func jsError(err error) js.Value {
	return js.ValueOf(map[string]interface{}{"error": err.Error()})
}

// createScene creates a scene by name
func createScene(name string, aspectRatio float64) (*scene.Scene, error) {
	switch name {
	case "cover":
		return scene.NewCoverScene(aspectRatio, 42)
	default:
		return scene.NewDefaultScene(aspectRatio)
	}
}
