// Package raster loads georeferenced images for use as map overlays.
//
// Pixel data is decoded with the standard image registry (TIFF support
// comes from golang.org/x/image/tiff) and re-encoded as a PNG data URI
// that a browser can display without a second request. The geographic
// extent comes from a world file sidecar next to the raster.
package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/tiff"

	"github.com/tremorlab/quake-map-service/internal/domain"
	"github.com/tremorlab/quake-map-service/internal/observability"
)

var (
	// ErrNoGeoreference means no world file sidecar was found next to the raster.
	ErrNoGeoreference = errors.New("no world file for raster")

	// ErrRotatedRaster means the world file carries rotation terms,
	// which a rectangular overlay cannot express.
	ErrRotatedRaster = errors.New("rotated rasters are not supported")
)

// Source loads a raster grid by path.
type Source interface {
	Load(ctx context.Context, path string) (*domain.Grid, error)
}

// FileSource reads rasters from the local filesystem.
type FileSource struct {
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewFileSource creates a filesystem-backed raster source.
func NewFileSource(metrics *observability.Metrics, logger *slog.Logger) *FileSource {
	return &FileSource{
		metrics: metrics,
		logger:  logger,
	}
}

// Load decodes the raster at path and georeferences it from its world
// file sidecar.
func (s *FileSource) Load(_ context.Context, path string) (*domain.Grid, error) {
	grid, err := s.load(path)
	if err != nil {
		s.metrics.RasterLoads.WithLabelValues("error").Inc()
		return nil, err
	}
	s.metrics.RasterLoads.WithLabelValues("success").Inc()
	return grid, nil
}

func (s *FileSource) load(path string) (*domain.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raster: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode raster %s: %w", path, err)
	}

	wf, err := loadWorldFile(path)
	if err != nil {
		return nil, err
	}

	size := img.Bounds().Size()
	bounds, err := wf.bounds(size.X, size.Y)
	if err != nil {
		return nil, err
	}

	uri, err := encodeDataURI(img)
	if err != nil {
		return nil, fmt.Errorf("encode overlay image: %w", err)
	}

	s.logger.Info("raster loaded",
		"path", path,
		"format", format,
		"width", size.X,
		"height", size.Y,
		"south", bounds.South,
		"west", bounds.West,
		"north", bounds.North,
		"east", bounds.East)

	return &domain.Grid{
		Bounds:   bounds,
		Width:    size.X,
		Height:   size.Y,
		ImageURI: uri,
	}, nil
}

func encodeDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
