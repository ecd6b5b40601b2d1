package web

import (
	"html/template"
	"net/http"
)

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardTemplate))

// handleDashboard serves the single dashboard page. The form submits
// into the map iframe, so updating the query never reloads the page.
func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, s.defaults); err != nil {
		s.logger.Error("dashboard render failed", "error", err)
	}
}

const dashboardTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Earthquake Map</title>
<style>
  body { margin: 0; font-family: system-ui, sans-serif; }
  header { padding: 0.75rem 1rem; background: #1f2937; color: #f9fafb; }
  header h1 { margin: 0; font-size: 1.1rem; }
  form { display: flex; flex-wrap: wrap; gap: 1rem; align-items: flex-end; padding: 0.75rem 1rem; border-bottom: 1px solid #e5e7eb; }
  label { display: flex; flex-direction: column; font-size: 0.8rem; color: #374151; }
  input { margin-top: 0.25rem; padding: 0.3rem; }
  button { padding: 0.4rem 0.9rem; }
  iframe { display: block; width: 100%; height: calc(100vh - 150px); border: 0; }
  #export-result { font-size: 0.8rem; color: #374151; align-self: center; }
</style>
</head>
<body>
<header><h1>Earthquake Map</h1></header>
<form id="query-form" method="get" action="/map" target="map-frame">
  <label>Start date
    <input type="date" name="start" value="{{.StartDate}}">
  </label>
  <label>End date
    <input type="date" name="end" value="{{.EndDate}}">
  </label>
  <label>Min magnitude
    <input type="number" name="min_magnitude" step="0.1" value="{{.MinMagnitude}}">
  </label>
  <label>Raster overlay
    <input type="text" name="raster" value="{{.RasterPath}}" placeholder="path to georeferenced image">
  </label>
  <button type="submit">Update map</button>
  <button type="button" id="export">Export HTML</button>
  <span id="export-result"></span>
</form>
<iframe name="map-frame" src="/map"></iframe>
<script>
document.getElementById("export").addEventListener("click", function () {
  var params = new URLSearchParams(new FormData(document.getElementById("query-form")));
  fetch("/api/export?" + params.toString(), { method: "POST" })
    .then(function (res) { return res.json(); })
    .then(function (body) {
      document.getElementById("export-result").textContent = body.path ? "saved " + body.path : body.error;
    })
    .catch(function () {
      document.getElementById("export-result").textContent = "export failed";
    });
});
</script>
</body>
</html>
`
