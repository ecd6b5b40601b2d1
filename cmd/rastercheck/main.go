// Command rastercheck verifies that a raster image is usable as a map
// overlay: the image decodes, a world file sidecar is present and
// north-up, and the derived geographic bounds are plausible lon/lat.
//
// Usage:
//
//	go run ./cmd/rastercheck -raster data/EarthImage.tif
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tremorlab/quake-map-service/internal/adapter/raster"
	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

// Overlays are embedded into the page as base64, so anything past this
// produces HTML that browsers will not load comfortably.
const maxEmbeddedBytes = 64 << 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rasterPath := flag.String("raster", "", "path to the raster image (requires a world file sidecar)")
	flag.Parse()

	if *rasterPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rasterPath); code != 0 {
		os.Exit(code)
	}
}

func run(rasterPath string) int {
	fmt.Println("=== Raster Overlay Validation ===")
	fmt.Println()

	src := raster.NewFileSource(observability.NewMetrics(), observability.NewLogger("error", "text"))

	start := time.Now()
	grid, err := src.Load(context.Background(), rasterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		switch {
		case errors.Is(err, raster.ErrNoGeoreference):
			fmt.Fprintln(os.Stderr, "hint: place a six-line world file next to the image (.tfw/.pgw/.jgw or .wld)")
		case errors.Is(err, raster.ErrRotatedRaster):
			fmt.Fprintln(os.Stderr, "hint: rotated rasters are not supported, re-export the image north-up")
		}
		return 1
	}
	loadTime := time.Since(start)

	fmt.Printf("Raster: %s\n", rasterPath)
	fmt.Printf("  Dimensions: %d x %d px\n", grid.Width, grid.Height)
	fmt.Printf("  Bounds: south=%g west=%g north=%g east=%g\n",
		grid.Bounds.South, grid.Bounds.West, grid.Bounds.North, grid.Bounds.East)
	fmt.Printf("  Embedded size: %.2f MB (base64 PNG)\n", float64(len(grid.ImageURI))/(1<<20))
	fmt.Printf("  Load time: %s\n", loadTime)

	phases := []*phase{
		validateBounds(grid.Bounds),
		validatePayload(grid),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-28s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nRaster is usable as a map overlay.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateBounds checks that the world file placed the image somewhere
// on a lon/lat globe. Out-of-range values usually mean the world file
// carries projected coordinates (meters) rather than degrees.
func validateBounds(b domain.Bounds) *phase {
	p := &phase{name: "Geographic bounds"}

	for _, lat := range []struct {
		name  string
		value float64
	}{{"south", b.South}, {"north", b.North}} {
		if lat.value < -90 || lat.value > 90 {
			p.errorf("%s latitude %g outside [-90, 90]; world file coordinates are probably projected, not degrees", lat.name, lat.value)
		}
	}
	for _, lon := range []struct {
		name  string
		value float64
	}{{"west", b.West}, {"east", b.East}} {
		if lon.value < -180 || lon.value > 180 {
			p.errorf("%s longitude %g outside [-180, 180]; world file coordinates are probably projected, not degrees", lon.name, lon.value)
		}
	}

	if b.North <= b.South {
		p.errorf("degenerate latitude span: north %g <= south %g", b.North, b.South)
	}
	if b.East <= b.West {
		p.errorf("degenerate longitude span: east %g <= west %g", b.East, b.West)
	}

	return p
}

// validatePayload checks the render-ready form of the raster.
func validatePayload(grid *domain.Grid) *phase {
	p := &phase{name: "Embedded payload"}

	if !strings.HasPrefix(grid.ImageURI, "data:image/png;base64,") {
		p.errorf("image URI does not carry a base64 PNG payload")
	}
	if len(grid.ImageURI) > maxEmbeddedBytes {
		p.errorf("embedded payload is %.2f MB (limit %d MB); downsample the raster before overlaying",
			float64(len(grid.ImageURI))/(1<<20), maxEmbeddedBytes>>20)
	}

	return p
}
