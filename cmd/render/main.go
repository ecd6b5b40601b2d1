// Command render runs one fetch, compose, export cycle without the web
// server and writes the standalone map HTML.
//
// Usage:
//
//	go run ./cmd/render \
//	  -start 2013-01-01 -end 2023-01-31 -min-magnitude 6 \
//	  -raster data/EarthImage.tif -out-dir exports
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/tremorlab/quake-map-service/internal/adapter/raster"
	"github.com/tremorlab/quake-map-service/internal/adapter/usgs"
	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
	"github.com/tremorlab/quake-map-service/internal/pipeline"
)

const dateLayout = "2006-01-02"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	start := flag.String("start", "2013-01-01", "start date, YYYY-MM-DD inclusive")
	end := flag.String("end", "2023-01-31", "end date, YYYY-MM-DD inclusive")
	minMag := flag.Float64("min-magnitude", 6.0, "minimum event magnitude")
	rasterPath := flag.String("raster", "", "georeferenced raster to overlay (optional)")
	outDir := flag.String("out-dir", ".", "directory for the exported HTML")
	baseURL := flag.String("base-url", "https://earthquake.usgs.gov/fdsnws/event/1/query", "USGS event catalog endpoint")
	timeout := flag.Duration("timeout", 30*time.Second, "catalog request timeout")
	flag.Parse()

	if _, err := time.Parse(dateLayout, *start); err != nil {
		return fmt.Errorf("invalid -start %q, want YYYY-MM-DD", *start)
	}
	if _, err := time.Parse(dateLayout, *end); err != nil {
		return fmt.Errorf("invalid -end %q, want YYYY-MM-DD", *end)
	}

	logger := observability.NewLogger("warn", "text")
	metrics := observability.NewMetrics()

	catalog := usgs.NewClient(*baseURL, *timeout, metrics, logger)
	rasters := raster.NewFileSource(metrics, logger)
	svc := pipeline.New(catalog, rasters, nil, *outDir, logger, metrics)

	q := domain.EventQuery{StartTime: *start, EndTime: *end, MinMagnitude: *minMag}

	records, err := svc.FetchEvents(context.Background(), q)
	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}
	log.Printf("fetched %d events (%s to %s, M >= %g)", len(records), *start, *end, *minMag)

	m := svc.ComposeMap(context.Background(), records, *rasterPath)
	log.Printf("composed map with %d markers and %d overlays", len(m.Markers), len(m.Overlays))

	outPath := filepath.Join(*outDir, pipeline.ExportFileName)
	if err := m.Save(outPath); err != nil {
		return fmt.Errorf("save map: %w", err)
	}
	log.Printf("wrote %s", outPath)
	return nil
}
