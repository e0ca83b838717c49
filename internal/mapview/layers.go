package mapview

import "github.com/mr1hm/go-quake-viewer/internal/dataset"

// Source and layer names registered by the viewer.
const (
	RegionSource     = "japan"
	RegionLayer      = "japan-layer"
	EarthquakeSource = "earthquakes"
	EarthquakeLayer  = "earthquakes-layer"
	TsunamiSource    = "tsunami"
	TsunamiLayer     = "tsunami-layer"
)

// LayerFor maps a dataset to the layer that draws it.
func LayerFor(k dataset.Key) string {
	if k == dataset.Tsunami {
		return TsunamiLayer
	}
	return EarthquakeLayer
}

func RegionFill() Layer {
	return Layer{
		ID:     RegionLayer,
		Type:   LayerFill,
		Source: RegionSource,
		Paint: map[string]any{
			"fill-color":   "#0080ff",
			"fill-opacity": 0.5,
		},
	}
}

func EarthquakeMarkers() Layer {
	return markers(EarthquakeLayer, EarthquakeSource, "red", Visible)
}

// TsunamiMarkers starts hidden; earthquakes are shown first.
func TsunamiMarkers() Layer {
	return markers(TsunamiLayer, TsunamiSource, "#00d1ff", Hidden)
}

func markers(id, source, color string, v Visibility) Layer {
	return Layer{
		ID:     id,
		Type:   LayerCircle,
		Source: source,
		Layout: map[string]any{"visibility": string(v)},
		Paint: map[string]any{
			"circle-radius":       8,
			"circle-stroke-width": 2,
			"circle-color":        color,
			"circle-stroke-color": "white",
		},
	}
}
