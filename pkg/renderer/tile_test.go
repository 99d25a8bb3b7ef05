package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid_CoversImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 128, 64, 64, 2},
		{"ragged edges", 100, 70, 64, 4},
		{"single tile", 32, 32, 64, 1},
		{"one pixel", 1, 1, 64, 1},
		{"tall strip", 10, 200, 64, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 42)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Every pixel belongs to exactly one tile
			covered := make(map[image.Point]int)
			for _, tile := range tiles {
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[image.Pt(x, y)]++
					}
				}
			}
			if len(covered) != tt.width*tt.height {
				t.Errorf("Expected %d covered pixels, got %d", tt.width*tt.height, len(covered))
			}
			for pt, count := range covered {
				if count != 1 {
					t.Fatalf("Pixel %v covered %d times", pt, count)
				}
			}
		})
	}
}

func TestNewTileGrid_ClipsBounds(t *testing.T) {
	tiles := NewTileGrid(100, 70, 64, 42)
	full := image.Rect(0, 0, 100, 70)

	for _, tile := range tiles {
		if !tile.Bounds.In(full) {
			t.Errorf("Tile %d bounds %v exceed the image", tile.ID, tile.Bounds)
		}
		if tile.Bounds.Empty() {
			t.Errorf("Tile %d has empty bounds", tile.ID)
		}
	}
}

func TestNewTileGrid_UniqueIDs(t *testing.T) {
	tiles := NewTileGrid(256, 256, 64, 42)

	seen := make(map[int]bool)
	for _, tile := range tiles {
		if seen[tile.ID] {
			t.Fatalf("Duplicate tile ID %d", tile.ID)
		}
		seen[tile.ID] = true
		if tile.Random == nil {
			t.Fatalf("Tile %d has no random stream", tile.ID)
		}
	}
}

func TestNewTile_IndependentStreams(t *testing.T) {
	a := NewTile(0, image.Rect(0, 0, 1, 1), 42)
	b := NewTile(1, image.Rect(1, 0, 2, 1), 42)

	// Different IDs under the same base seed produce different streams
	same := true
	for i := 0; i < 10; i++ {
		if a.Random.Float64() != b.Random.Float64() {
			same = false
		}
	}
	if same {
		t.Error("Expected distinct random streams for distinct tile IDs")
	}
}
