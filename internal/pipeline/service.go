// Package pipeline orchestrates the fetch, normalize, and compose
// stages behind the dashboard and export surfaces.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/leaflet"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

// ExportFileName is the fixed name of exported map documents.
const ExportFileName = "earthquake_map_with_imagery.html"

const markerColor = "red"

// Catalog fetches raw earthquake records matching a query window.
type Catalog interface {
	FetchEvents(ctx context.Context, q domain.EventQuery) ([]domain.Record, error)
}

// RasterSource loads a georeferenced overlay image by path.
type RasterSource interface {
	Load(ctx context.Context, path string) (*domain.Grid, error)
}

// Publisher forwards normalized records to a downstream sink.
type Publisher interface {
	PublishBatch(ctx context.Context, records []domain.Record) error
}

// Service orchestrates the fetch-normalize-compose cycle.
type Service struct {
	catalog   Catalog
	rasters   RasterSource
	publisher Publisher // nil when no sink is configured
	exportDir string
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Service with the given stages and observability.
func New(catalog Catalog, rasters RasterSource, publisher Publisher, exportDir string, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		catalog:   catalog,
		rasters:   rasters,
		publisher: publisher,
		exportDir: exportDir,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once at least one catalog query has
// succeeded, or an error describing why the service is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no catalog query has succeeded yet")
	}
	return nil
}

// FetchEvents retrieves and normalizes the records matching q. Records
// with a malformed position are dropped with a warning rather than
// failing the whole table. Normalized records are forwarded to the
// sink when one is wired.
func (s *Service) FetchEvents(ctx context.Context, q domain.EventQuery) ([]domain.Record, error) {
	raw, err := s.catalog.FetchEvents(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	normalized := make([]domain.Record, 0, len(raw))
	for _, rec := range raw {
		norm, err := domain.NormalizeRecord(rec)
		if err != nil {
			s.logger.Warn("record rejected, skipping",
				"error", err,
				"id", rec.String(domain.ColID))
			s.metrics.RecordsRejected.Inc()
			continue
		}
		normalized = append(normalized, norm)
	}

	s.publish(ctx, normalized)
	s.ready.Store(true)
	return normalized, nil
}

// ComposeMap builds a clustered marker map from normalized records,
// optionally draping the raster at rasterPath under the markers. A
// raster that fails to load degrades to a marker-only map instead of
// failing the compose.
func (s *Service) ComposeMap(ctx context.Context, records []domain.Record, rasterPath string) *leaflet.Map {
	m := leaflet.NewMap(leaflet.DefaultCenter, leaflet.DefaultZoom)
	m.Title = "Earthquake Map"

	for _, rec := range records {
		lat, okLat := rec.Float(domain.ColLatitude)
		lng, okLng := rec.Float(domain.ColLongitude)
		if !okLat || !okLng {
			s.logger.Warn("record missing coordinates, skipping marker",
				"id", rec.String(domain.ColID))
			continue
		}
		m.AddMarker(leaflet.Marker{
			Lat:   lat,
			Lng:   lng,
			Popup: popupText(rec),
			Color: markerColor,
		})
	}

	if rasterPath != "" {
		if grid, err := s.rasters.Load(ctx, rasterPath); err != nil {
			s.logger.Warn("raster load failed, composing markers only",
				"path", rasterPath,
				"error", err)
		} else {
			m.AddOverlay(leaflet.ImageOverlay{
				URL:         grid.ImageURI,
				South:       grid.Bounds.South,
				West:        grid.Bounds.West,
				North:       grid.Bounds.North,
				East:        grid.Bounds.East,
				Opacity:     leaflet.DefaultOverlayOpacity,
				Interactive: true,
				ZIndex:      1,
			})
		}
	}

	s.metrics.MapsComposed.Inc()
	return m
}

// BuildMap runs the full fetch, normalize, compose cycle for a query
// and reports how many records made it onto the map.
func (s *Service) BuildMap(ctx context.Context, q domain.EventQuery, rasterPath string) (*leaflet.Map, int, error) {
	start := time.Now()

	records, err := s.FetchEvents(ctx, q)
	if err != nil {
		return nil, 0, err
	}
	m := s.ComposeMap(ctx, records, rasterPath)

	s.metrics.ComposeDuration.Observe(time.Since(start).Seconds())
	return m, len(records), nil
}

// ExportMap builds a map for the query and writes it under the export
// directory as a standalone HTML document, returning the file path.
func (s *Service) ExportMap(ctx context.Context, q domain.EventQuery, rasterPath string) (string, error) {
	m, count, err := s.BuildMap(ctx, q, rasterPath)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.exportDir, ExportFileName)
	if err := m.Save(path); err != nil {
		return "", fmt.Errorf("export map: %w", err)
	}

	s.metrics.MapsExported.Inc()
	s.logger.Info("map exported", "path", path, "events", count)
	return path, nil
}

// publish forwards normalized records to the sink. Failures are logged
// and dropped so a sink outage never blocks map composition.
func (s *Service) publish(ctx context.Context, records []domain.Record) {
	if s.publisher == nil || len(records) == 0 {
		return
	}
	if err := s.publisher.PublishBatch(ctx, records); err != nil {
		s.logger.Error("publish batch failed", "error", err, "count", len(records))
	}
}

// popupText renders the marker popup for a normalized record. Missing
// numbers render as NaN rather than hiding the field.
func popupText(rec domain.Record) string {
	return fmt.Sprintf("Magnitude: %s, Depth: %s km",
		floatText(rec, domain.ColMagnitude),
		floatText(rec, domain.ColDepth))
}

func floatText(rec domain.Record, key string) string {
	v, ok := rec.Float(key)
	if !ok {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
