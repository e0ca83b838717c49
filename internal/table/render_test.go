package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-quake-viewer/internal/dataset"
	"github.com/mr1hm/go-quake-viewer/internal/fields"
	"github.com/mr1hm/go-quake-viewer/internal/models"
)

func earthquakes() models.FeatureCollection {
	return models.FeatureCollection{Type: "FeatureCollection", Features: []models.Feature{
		{ID: "us1", Properties: models.Properties{"mag": 5.5, "time": 1700000000000.0}},
		{Properties: models.Properties{"EventID": "jma2", "magnitude": 3.0, "date": "2017-11-22"}},
		{Properties: models.Properties{"place": "nowhere"}},
	}}
}

func tsunami() models.FeatureCollection {
	return models.FeatureCollection{Type: "FeatureCollection", Features: []models.Feature{
		{Properties: models.Properties{"id": "t1", "tsunami_level": 2.0, "mag": 8.0, "timestamp": "not-a-date"}},
	}}
}

func newTestRenderer(t *testing.T) (*Renderer, *Table, *dataset.Registry) {
	t.Helper()
	fields.SetLocation(time.UTC)
	t.Cleanup(func() { fields.SetLocation(nil) })

	reg := dataset.NewRegistry()
	reg.Load(earthquakes(), tsunami())
	tbl := New()
	return NewRenderer(tbl, reg), tbl, reg
}

func TestRenderer_Render(t *testing.T) {
	r, tbl, reg := newTestRenderer(t)

	n := r.Render(reg.ActiveCollection())
	require.Equal(t, 3, n)

	rows := tbl.Rows()
	assert.Equal(t, []string{"us1", "5.5", "11/14/2023, 10:13:20 PM"}, rows[0].Cells)
	assert.Equal(t, []string{"jma2", "3", "11/22/2017, 12:00:00 AM"}, rows[1].Cells)
	assert.Equal(t, []string{fields.Missing, fields.Missing, fields.Missing}, rows[2].Cells)
}

func TestRenderer_RenderUsesActiveResolver(t *testing.T) {
	r, tbl, reg := newTestRenderer(t)

	reg.SetActive("tsunami")
	r.Render(reg.ActiveCollection())

	rows := tbl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"t1", "2", "not-a-date"}, rows[0].Cells, "tsunami level, never magnitude")
}

func TestRenderer_RenderReplacesRows(t *testing.T) {
	r, tbl, reg := newTestRenderer(t)

	r.Render(reg.ActiveCollection())
	SortDescendingBySecondColumn(tbl)
	r.Render(reg.ActiveCollection())

	assert.Equal(t, []string{"us1", "jma2", fields.Missing}, tbl.Column(0), "render resets to collection order")
	assert.Equal(t, DefaultHeader, tbl.Header())
}

func TestRenderer_RenderEmptyCollection(t *testing.T) {
	r, tbl, _ := newTestRenderer(t)
	r.Render(earthquakes())

	assert.NotPanics(t, func() {
		assert.Equal(t, 0, r.Render(models.FeatureCollection{}))
	})
	assert.Equal(t, 0, tbl.Len())
}

func TestRenderer_SetColumnLabel(t *testing.T) {
	r, tbl, reg := newTestRenderer(t)

	reg.SetActive("tsunami")
	r.SetColumnLabel()
	assert.Equal(t, []string{"id", "tsunami_level", "time"}, tbl.Header())

	reg.SetActive("earthquakes")
	r.SetColumnLabel()
	assert.Equal(t, []string{"id", "magnitude", "time"}, tbl.Header())
}

func TestRenderer_ShortHeaderAndNilTable(t *testing.T) {
	reg := dataset.NewRegistry()

	short := New("id")
	NewRenderer(short, reg).SetColumnLabel()
	assert.Equal(t, []string{"id"}, short.Header())

	r := NewRenderer(nil, reg)
	assert.NotPanics(t, func() {
		r.SetColumnLabel()
		assert.Equal(t, 0, r.Render(earthquakes()))
	})
}
