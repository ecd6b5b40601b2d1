package raster

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tremorlab/quake-map-service/internal/domain"
)

// A world file georeferences a raster with six affine coefficients,
// one per line: x pixel size, y rotation, x rotation, y pixel size
// (negative for north-up rasters), then the map coordinates of the
// center of the upper-left pixel.
type worldFile struct {
	pixelSizeX float64
	rotationY  float64
	rotationX  float64
	pixelSizeY float64
	originX    float64
	originY    float64
}

// Conventional sidecar extension per raster extension. The generic
// .wld form is tried as a fallback.
var worldFileExts = map[string]string{
	".tif":  ".tfw",
	".tiff": ".tfw",
	".png":  ".pgw",
	".jpg":  ".jgw",
	".jpeg": ".jgw",
}

func loadWorldFile(rasterPath string) (worldFile, error) {
	for _, p := range sidecarPaths(rasterPath) {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return worldFile{}, fmt.Errorf("read world file: %w", err)
		}
		wf, err := parseWorldFile(data)
		if err != nil {
			return worldFile{}, fmt.Errorf("parse %s: %w", filepath.Base(p), err)
		}
		return wf, nil
	}
	return worldFile{}, fmt.Errorf("%s: %w", rasterPath, ErrNoGeoreference)
}

func sidecarPaths(rasterPath string) []string {
	ext := filepath.Ext(rasterPath)
	stem := strings.TrimSuffix(rasterPath, ext)
	paths := make([]string, 0, 2)
	if w, ok := worldFileExts[strings.ToLower(ext)]; ok {
		paths = append(paths, stem+w)
	}
	return append(paths, stem+".wld")
}

func parseWorldFile(data []byte) (worldFile, error) {
	fields := strings.Fields(string(data))
	if len(fields) != 6 {
		return worldFile{}, fmt.Errorf("expected 6 coefficients, got %d", len(fields))
	}

	var coeffs [6]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return worldFile{}, fmt.Errorf("coefficient %d: %w", i+1, err)
		}
		coeffs[i] = v
	}

	return worldFile{
		pixelSizeX: coeffs[0],
		rotationY:  coeffs[1],
		rotationX:  coeffs[2],
		pixelSizeY: coeffs[3],
		originX:    coeffs[4],
		originY:    coeffs[5],
	}, nil
}

// bounds converts the affine coefficients into the geographic extent
// of a width by height raster. The origin is the center of the
// upper-left pixel, so each edge sits half a pixel beyond it.
func (w worldFile) bounds(width, height int) (domain.Bounds, error) {
	if w.rotationX != 0 || w.rotationY != 0 {
		return domain.Bounds{}, ErrRotatedRaster
	}
	if w.pixelSizeX == 0 || w.pixelSizeY == 0 {
		return domain.Bounds{}, errors.New("world file has zero pixel size")
	}

	x0 := w.originX - w.pixelSizeX/2
	y0 := w.originY - w.pixelSizeY/2
	x1 := x0 + w.pixelSizeX*float64(width)
	y1 := y0 + w.pixelSizeY*float64(height)

	return domain.Bounds{
		South: math.Min(y0, y1),
		West:  math.Min(x0, x1),
		North: math.Max(y0, y1),
		East:  math.Max(x0, x1),
	}, nil
}
