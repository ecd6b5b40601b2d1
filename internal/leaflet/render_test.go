package leaflet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderToString(t *testing.T, m *Map) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))
	return buf.String()
}

func TestRender_FullDocument(t *testing.T) {
	m := NewMap(DefaultCenter, DefaultZoom)
	m.Title = "Earthquake Map"
	m.AddMarker(Marker{Lat: -33.8, Lng: 151.2, Popup: "Magnitude: 6.8, Depth: 10 km", Color: "red"})
	m.AddOverlay(ImageOverlay{
		URL:         "data:image/png;base64,aGk=",
		South:       40,
		West:        100,
		North:       41,
		East:        102,
		Opacity:     0.6,
		Interactive: true,
		ZIndex:      1,
	})

	html := renderToString(t, m)

	assert.Contains(t, html, "<title>Earthquake Map</title>")
	assert.Contains(t, html, "leaflet@1.9.4/dist/leaflet.js")
	assert.Contains(t, html, "leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js")
	assert.Contains(t, html, "markerClusterGroup")
	assert.Contains(t, html, `"zoom":4`)
	assert.Contains(t, html, `"lat":-25`)
	assert.Contains(t, html, `"lng":135`)
	assert.Contains(t, html, "Magnitude: 6.8, Depth: 10 km")
	assert.Contains(t, html, "data:image/png;base64,aGk=")
	assert.Contains(t, html, `"south":40`)
	assert.Contains(t, html, `"north":41`)
	assert.Contains(t, html, `"opacity":0.6`)
}

func TestRender_MarkerCoordinatesInjected(t *testing.T) {
	m := NewMap(DefaultCenter, DefaultZoom)
	m.AddMarker(Marker{Lat: -33.8, Lng: 151.2, Popup: "Magnitude: 6.8, Depth: 10 km", Color: "red"})
	m.AddMarker(Marker{Lat: 55.2, Lng: -134.9, Popup: "Magnitude: 7.5, Depth: 8.7 km", Color: "red"})

	html := renderToString(t, m)

	assert.Contains(t, html, `"lat":-33.8`)
	assert.Contains(t, html, `"lng":151.2`)
	assert.Contains(t, html, `"lat":55.2`)
	assert.Contains(t, html, `"lng":-134.9`)
	assert.Contains(t, html, `"color":"red"`)
}

func TestRender_EmptyMap(t *testing.T) {
	m := NewMap(DefaultCenter, DefaultZoom)

	html := renderToString(t, m)

	// Empty slices must inject as [] rather than null so the page
	// script still runs.
	assert.NotContains(t, html, "null")
	assert.Contains(t, html, "<title>Map</title>")
}

func TestRender_NoOverlayBlockWithoutRaster(t *testing.T) {
	m := NewMap(DefaultCenter, DefaultZoom)
	m.AddMarker(Marker{Lat: -33.8, Lng: 151.2, Popup: "Magnitude: 6.8, Depth: 10 km", Color: "red"})

	html := renderToString(t, m)
	assert.NotContains(t, html, "data:image/png")
}
