// Package leaflet composes interactive marker maps and renders them as
// standalone HTML documents built on the Leaflet and MarkerCluster
// browser libraries. Markers and overlays are injected into the page
// as JSON, so the output needs nothing beyond the CDN assets it links.
package leaflet

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultZoom frames a continent-scale view.
	DefaultZoom = 4

	// DefaultOverlayOpacity keeps base tiles visible through a raster.
	DefaultOverlayOpacity = 0.6
)

// DefaultCenter is the initial view when no other center is chosen.
var DefaultCenter = LatLng{Lat: -25.0, Lng: 135.0}

// LatLng is a geographic point in Leaflet's lat, lng order.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is a clustered map pin with popup text.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
	Color string  `json:"color"`
}

// ImageOverlay drapes an image between two geographic corners.
type ImageOverlay struct {
	URL         string  `json:"url"`
	South       float64 `json:"south"`
	West        float64 `json:"west"`
	North       float64 `json:"north"`
	East        float64 `json:"east"`
	Opacity     float64 `json:"opacity"`
	Interactive bool    `json:"interactive"`
	ZIndex      int     `json:"zIndex"`
}

// Map accumulates markers and overlays around an initial view.
type Map struct {
	Title    string
	Center   LatLng
	Zoom     int
	Markers  []Marker
	Overlays []ImageOverlay
}

// NewMap creates an empty map framed at center.
func NewMap(center LatLng, zoom int) *Map {
	return &Map{
		Center: center,
		Zoom:   zoom,
	}
}

// AddMarker appends a marker to the clustered layer.
func (m *Map) AddMarker(mk Marker) {
	m.Markers = append(m.Markers, mk)
}

// AddOverlay appends an image overlay beneath the marker layer.
func (m *Map) AddOverlay(ov ImageOverlay) {
	m.Overlays = append(m.Overlays, ov)
}

// Save renders the map to path as a standalone HTML document, creating
// parent directories as needed. An existing file is truncated.
func (m *Map) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map file: %w", err)
	}
	if err := m.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
