package leaflet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMap(t *testing.T) {
	m := NewMap(DefaultCenter, DefaultZoom)

	assert.Equal(t, LatLng{Lat: -25.0, Lng: 135.0}, m.Center)
	assert.Equal(t, 4, m.Zoom)
	assert.Empty(t, m.Markers)
	assert.Empty(t, m.Overlays)
}

func TestMap_AddMarker(t *testing.T) {
	m := NewMap(DefaultCenter, DefaultZoom)

	m.AddMarker(Marker{Lat: -33.8, Lng: 151.2, Popup: "Magnitude: 6.8, Depth: 10 km", Color: "red"})
	m.AddMarker(Marker{Lat: 55.2, Lng: -134.9, Popup: "Magnitude: 7.5, Depth: 8.7 km", Color: "red"})

	require.Len(t, m.Markers, 2)
	assert.Equal(t, -33.8, m.Markers[0].Lat)
	assert.Equal(t, 151.2, m.Markers[0].Lng)
}

func TestMap_AddOverlay(t *testing.T) {
	m := NewMap(DefaultCenter, DefaultZoom)

	m.AddOverlay(ImageOverlay{
		URL:         "data:image/png;base64,aGk=",
		South:       -90,
		West:        -180,
		North:       90,
		East:        180,
		Opacity:     DefaultOverlayOpacity,
		Interactive: true,
		ZIndex:      1,
	})

	require.Len(t, m.Overlays, 1)
	assert.Equal(t, 0.6, m.Overlays[0].Opacity)
}

func TestMap_Save(t *testing.T) {
	m := NewMap(DefaultCenter, DefaultZoom)
	m.Title = "Earthquake Map"
	m.AddMarker(Marker{Lat: -33.8, Lng: 151.2, Popup: "Magnitude: 6.8, Depth: 10 km", Color: "red"})

	path := filepath.Join(t.TempDir(), "exports", "earthquake_map_with_imagery.html")
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.Contains(t, string(data), "Magnitude: 6.8, Depth: 10 km")
}

func TestMap_SaveTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.html")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 1<<20)), 0o644))

	m := NewMap(DefaultCenter, DefaultZoom)
	require.NoError(t, m.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
	assert.NotContains(t, string(data), "xxx")
}
