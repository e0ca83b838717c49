package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-quake-viewer/internal/models"
)

func testCollections() (models.FeatureCollection, models.FeatureCollection) {
	eq := models.FeatureCollection{Type: "FeatureCollection", Features: []models.Feature{
		{ID: "eq1", Properties: models.Properties{"mag": 6.0, "tsunami_level": 9.0}},
	}}
	tsu := models.FeatureCollection{Type: "FeatureCollection", Features: []models.Feature{
		{ID: "ts1", Properties: models.Properties{"level": 2.0}},
		{ID: "ts2", Properties: models.Properties{"level": 1.0}},
	}}
	return eq, tsu
}

func TestRegistry_Defaults(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, Earthquakes, r.Active())
	assert.Equal(t, "magnitude", r.ColumnLabel())
	assert.Equal(t, 0, r.ActiveCollection().Len())
}

func TestRegistry_SetActive(t *testing.T) {
	r := NewRegistry()
	eq, tsu := testCollections()
	r.Load(eq, tsu)

	require.True(t, r.SetActive("tsunami"))
	assert.Equal(t, Tsunami, r.Active())
	assert.Equal(t, "tsunami_level", r.ColumnLabel())
	assert.Equal(t, 2, r.ActiveCollection().Len())

	require.True(t, r.SetActive("earthquakes"))
	assert.Equal(t, "magnitude", r.ColumnLabel())
	assert.Equal(t, 1, r.ActiveCollection().Len())
}

func TestRegistry_SetActiveRejectsUnknownKeys(t *testing.T) {
	r := NewRegistry()
	require.True(t, r.SetActive("tsunami"))

	for _, bad := range []string{"", "Tsunami", "floods", "earthquakes "} {
		assert.False(t, r.SetActive(bad), bad)
		assert.Equal(t, Tsunami, r.Active(), "prior state kept after %q", bad)
	}
}

func TestRegistry_SecondaryResolver(t *testing.T) {
	r := NewRegistry()
	props := models.Properties{"mag": 6.0, "tsunami_level": 9.0}

	assert.Equal(t, 6.0, r.SecondaryResolver()(props))

	r.SetActive("tsunami")
	assert.Equal(t, 9.0, r.SecondaryResolver()(props))
}

func TestRegistry_Collection(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Collection(Tsunami)
	assert.False(t, ok)

	eq, tsu := testCollections()
	r.Load(eq, tsu)

	got, ok := r.Collection(Tsunami)
	require.True(t, ok)
	assert.Equal(t, "ts1", got.Features[0].ID)
}

func TestParseKey(t *testing.T) {
	k, ok := ParseKey("earthquakes")
	assert.True(t, ok)
	assert.Equal(t, Earthquakes, k)

	_, ok = ParseKey("volcano")
	assert.False(t, ok)
}
