package leaflet

import (
	"fmt"
	"html/template"
	"io"
)

// view mirrors Map's framing for JSON injection.
type view struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}

type templateData struct {
	Title    string
	View     view
	Markers  []Marker
	Overlays []ImageOverlay
}

var mapTmpl = template.Must(template.New("map").Parse(mapTemplate))

// Render writes the map as a standalone HTML document. The slices are
// embedded as JSON literals inside the page's script block.
func (m *Map) Render(w io.Writer) error {
	data := templateData{
		Title:    m.Title,
		View:     view{Center: m.Center, Zoom: m.Zoom},
		Markers:  m.Markers,
		Overlays: m.Overlays,
	}
	// A nil slice would inject "null" and break the iteration below.
	if data.Markers == nil {
		data.Markers = []Marker{}
	}
	if data.Overlays == nil {
		data.Overlays = []ImageOverlay{}
	}
	if data.Title == "" {
		data.Title = "Map"
	}

	if err := mapTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

const mapTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css"/>
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.pin-icon { background: transparent; border: none; }
</style>
</head>
<body>
<div id="map"></div>
<script>
(function(){
var VIEW = {{.View}};
var MARKERS = {{.Markers}};
var OVERLAYS = {{.Overlays}};

var map = L.map('map').setView([VIEW.center.lat, VIEW.center.lng], VIEW.zoom);

L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  maxZoom: 19,
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

for (var i = 0; i < OVERLAYS.length; i++) {
  var ov = OVERLAYS[i];
  L.imageOverlay(ov.url, [[ov.south, ov.west], [ov.north, ov.east]], {
    opacity: ov.opacity,
    interactive: ov.interactive,
    zIndex: ov.zIndex
  }).addTo(map);
}

function pinIcon(color) {
  var svg = '<svg xmlns="http://www.w3.org/2000/svg" width="25" height="41" viewBox="0 0 25 41">'
    + '<path d="M12.5 0C5.6 0 0 5.6 0 12.5c0 9.4 12.5 28.5 12.5 28.5S25 21.9 25 12.5C25 5.6 19.4 0 12.5 0z" fill="' + color + '"/>'
    + '<circle cx="12.5" cy="12.5" r="4.5" fill="#fff"/></svg>';
  return L.divIcon({
    className: 'pin-icon',
    html: svg,
    iconSize: [25, 41],
    iconAnchor: [12, 41],
    popupAnchor: [0, -34]
  });
}

var cluster = L.markerClusterGroup();
for (var j = 0; j < MARKERS.length; j++) {
  var mk = MARKERS[j];
  var marker = L.marker([mk.lat, mk.lng], { icon: pinIcon(mk.color || 'red') });
  marker.bindPopup(mk.popup);
  cluster.addLayer(marker);
}
map.addLayer(cluster);
})();
</script>
</body>
</html>
`
