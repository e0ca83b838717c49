package mapview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-quake-viewer/internal/dataset"
)

var emptyFC = json.RawMessage(`{"type":"FeatureCollection","features":[]}`)

func TestStyle_Ready(t *testing.T) {
	s := NewStyle()

	select {
	case <-s.Ready():
		t.Fatal("ready before MarkReady")
	default:
	}

	s.MarkReady()
	s.MarkReady()

	select {
	case <-s.Ready():
	default:
		t.Fatal("expected ready after MarkReady")
	}
}

func TestStyle_AddSourceAndLayer(t *testing.T) {
	s := NewStyle()

	require.NoError(t, s.AddSource(EarthquakeSource, emptyFC))
	assert.True(t, s.HasSource(EarthquakeSource))
	assert.ErrorIs(t, s.AddSource(EarthquakeSource, emptyFC), ErrDuplicateSource)

	require.NoError(t, s.AddLayer(EarthquakeMarkers()))
	assert.True(t, s.HasLayer(EarthquakeLayer))
	assert.ErrorIs(t, s.AddLayer(EarthquakeMarkers()), ErrDuplicateLayer)

	assert.ErrorIs(t, s.AddLayer(TsunamiMarkers()), ErrUnknownSource)
	assert.Equal(t, 1, s.LayerCount())
}

func TestStyle_DefaultVisibility(t *testing.T) {
	s := NewStyle()
	require.NoError(t, s.AddSource(RegionSource, emptyFC))
	require.NoError(t, s.AddSource(TsunamiSource, emptyFC))
	require.NoError(t, s.AddLayer(RegionFill()))
	require.NoError(t, s.AddLayer(TsunamiMarkers()))

	v, ok := s.Visibility(RegionLayer)
	require.True(t, ok)
	assert.Equal(t, Visible, v)

	v, ok = s.Visibility(TsunamiLayer)
	require.True(t, ok)
	assert.Equal(t, Hidden, v)

	_, ok = s.Visibility("nope")
	assert.False(t, ok)
}

func TestStyle_SetVisibility(t *testing.T) {
	s := NewStyle()
	require.NoError(t, s.AddSource(EarthquakeSource, emptyFC))
	require.NoError(t, s.AddLayer(EarthquakeMarkers()))

	require.NoError(t, s.SetVisibility(EarthquakeLayer, Hidden))
	assert.Equal(t, map[string]string{EarthquakeLayer: "none"}, s.VisibilityMap())

	assert.ErrorIs(t, s.SetVisibility("missing-layer", Visible), ErrUnknownLayer)
	assert.ErrorIs(t, s.SetVisibility(EarthquakeLayer, "blink"), ErrBadVisibility)
}

func TestStyle_DocumentIsACopy(t *testing.T) {
	s := NewStyle()
	require.NoError(t, s.AddSource(EarthquakeSource, emptyFC))
	require.NoError(t, s.AddLayer(EarthquakeMarkers()))

	doc := s.Document()
	doc.Layers[0].Layout["visibility"] = "none"

	v, _ := s.Visibility(EarthquakeLayer)
	assert.Equal(t, Visible, v)

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"earthquakes-layer"`)
	assert.Contains(t, string(b), `"type":"geojson"`)
}

func TestEnsureHelpersAreIdempotent(t *testing.T) {
	s := NewStyle()

	for i := 0; i < 2; i++ {
		require.NoError(t, EnsureSource(s, RegionSource, emptyFC))
		require.NoError(t, EnsureLayer(s, RegionFill()))
	}
	assert.Equal(t, 1, s.LayerCount())
}

func TestLayerFor(t *testing.T) {
	assert.Equal(t, EarthquakeLayer, LayerFor(dataset.Earthquakes))
	assert.Equal(t, TsunamiLayer, LayerFor(dataset.Tsunami))
}
