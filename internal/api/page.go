package api

import (
	"html/template"

	"github.com/mr1hm/go-quake-viewer/internal/dataset"
	"github.com/mr1hm/go-quake-viewer/internal/models"
	"github.com/mr1hm/go-quake-viewer/internal/viewer"
)

type pageOption struct {
	Value    string
	Selected bool
}

type pageData struct {
	View     models.ViewSnapshot
	Options  []pageOption
	Loading  bool
	Failed   bool
	FailText string
}

func newPageData(s models.ViewSnapshot) pageData {
	d := pageData{
		View:     s,
		Loading:  s.State == viewer.StateLoading.String(),
		Failed:   s.State == viewer.StateFailed.String(),
		FailText: viewer.LoadFailureMessage,
	}
	for _, k := range dataset.Keys {
		d.Options = append(d.Options, pageOption{Value: k.String(), Selected: k.String() == s.Dataset})
	}
	return d
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Japan earthquakes</title>
<link href="https://api.mapbox.com/mapbox-gl-js/v2.15.0/mapbox-gl.css" rel="stylesheet">
<script src="https://api.mapbox.com/mapbox-gl-js/v2.15.0/mapbox-gl.js"></script>
<style>
body { margin: 0; font-family: sans-serif; }
#map { height: 60vh; }
#controls { padding: 8px; }
#error { padding: 8px; background: #fdd; color: #900; }
#data-table { border-collapse: collapse; width: 100%; }
#data-table td, #data-table th { border: 1px solid #ccc; padding: 4px 8px; }
</style>
</head>
<body>
{{if .Failed}}<div id="error">{{.FailText}}</div>{{end}}
{{if .Loading}}<div id="loading">Loading data...</div>{{end}}
<div id="map"></div>
<div id="controls">
<form method="post" action="/dataset" style="display:inline">
<select id="dataset-select" name="dataset" onchange="this.form.submit()">
{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>
</form>
<form method="post" action="/sort" style="display:inline">
<button id="sort-btn" type="submit">Sort</button>
</form>
</div>
<table id="data-table">
<thead><tr>{{range .View.Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .View.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<script>
fetch("/api/map").then(function (r) { return r.json(); }).then(function (cfg) {
  if (!cfg.token) { return; }
  mapboxgl.accessToken = cfg.token;
  var map = new mapboxgl.Map({ container: "map", style: cfg.style, center: cfg.center, zoom: cfg.zoom });
  map.on("load", function () {
    Object.keys(cfg.sources || {}).forEach(function (name) { map.addSource(name, cfg.sources[name]); });
    (cfg.layers || []).forEach(function (layer) { map.addLayer(layer); });
  });
  new EventSource("/api/events").addEventListener("view", function (e) {
    var view = JSON.parse(e.data);
    Object.keys(view.visibility || {}).forEach(function (id) {
      if (map.getLayer(id)) { map.setLayoutProperty(id, "visibility", view.visibility[id]); }
    });
  });
});
</script>
</body>
</html>
`))
