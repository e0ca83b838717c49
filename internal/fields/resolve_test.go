package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mr1hm/go-quake-viewer/internal/models"
)

func TestResolveID_PriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		feature models.Feature
		want    string
	}{
		{
			name:    "feature id wins over properties",
			feature: models.Feature{ID: "us7000abcd", Properties: models.Properties{"id": "prop", "EventID": "ev"}},
			want:    "us7000abcd",
		},
		{
			name:    "numeric feature id",
			feature: models.Feature{ID: float64(42)},
			want:    "42",
		},
		{
			name:    "lowercase id property",
			feature: models.Feature{Properties: models.Properties{"id": "a", "ID": "b", "event_id": "c"}},
			want:    "a",
		},
		{
			name:    "uppercase ID before event_id",
			feature: models.Feature{Properties: models.Properties{"ID": "b", "event_id": "c", "EventID": "d"}},
			want:    "b",
		},
		{
			name:    "event_id before EventID",
			feature: models.Feature{Properties: models.Properties{"event_id": "c", "EventID": "d"}},
			want:    "c",
		},
		{
			name:    "EventID last",
			feature: models.Feature{Properties: models.Properties{"EventID": "d"}},
			want:    "d",
		},
		{
			name:    "null candidates are skipped",
			feature: models.Feature{Properties: models.Properties{"id": nil, "ID": nil, "EventID": "d"}},
			want:    "d",
		},
		{
			name:    "zero value is kept",
			feature: models.Feature{Properties: models.Properties{"id": float64(0), "EventID": "d"}},
			want:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveID(tt.feature))
		})
	}
}

func TestResolveID_Missing(t *testing.T) {
	assert.Equal(t, Missing, ResolveID(models.Feature{}))
	assert.Equal(t, Missing, ResolveID(models.Feature{Properties: models.Properties{"name": "x"}}))
	assert.Equal(t, Missing, ResolveID(models.Feature{Properties: models.Properties{"id": nil}}))
}

func TestResolveMagnitude(t *testing.T) {
	assert.Equal(t, 5.2, ResolveMagnitude(models.Properties{"mag": 5.2, "magnitude": 9.9}))
	assert.Equal(t, 4.0, ResolveMagnitude(models.Properties{"magnitude": 4.0}))
	assert.Equal(t, "6", ResolveMagnitude(models.Properties{"Magnitude": "6"}))
	assert.Equal(t, 3.3, ResolveMagnitude(models.Properties{"mag": nil, "M": 3.3}))
	assert.Nil(t, ResolveMagnitude(models.Properties{"level": 2.0}))
	assert.Nil(t, ResolveMagnitude(nil))
}

func TestResolveTsunamiLevel(t *testing.T) {
	assert.Equal(t, 1.5, ResolveTsunamiLevel(models.Properties{"tsunami_level": 1.5, "level": 3.0}))
	assert.Equal(t, "major", ResolveTsunamiLevel(models.Properties{"tsunamiLevel": "major"}))
	assert.Equal(t, 2.0, ResolveTsunamiLevel(models.Properties{"Level": 2.0}))
	assert.Nil(t, ResolveTsunamiLevel(models.Properties{"mag": 7.0}))
}

func TestResolveTime(t *testing.T) {
	assert.Equal(t, 1700000000000.0, ResolveTime(models.Properties{"time": 1700000000000.0, "date": "x"}))
	assert.Equal(t, "2017-11-22", ResolveTime(models.Properties{"Date": "2017-11-22"}))
	assert.Equal(t, Missing, ResolveTime(models.Properties{}))
	assert.Equal(t, Missing, ResolveTime(nil))
}

func TestResolve(t *testing.T) {
	f := models.Feature{
		ID:         "eq1",
		Properties: models.Properties{"mag": 6.1, "tsunami_level": 2.0, "time": 1.0},
	}

	r := Resolve(f, ResolveMagnitude)
	assert.Equal(t, "eq1", r.ID)
	assert.Equal(t, 6.1, r.Secondary)
	assert.Equal(t, 1.0, r.RawTime)

	r = Resolve(f, ResolveTsunamiLevel)
	assert.Equal(t, 2.0, r.Secondary)

	r = Resolve(f, nil)
	assert.Nil(t, r.Secondary)
}

func TestText(t *testing.T) {
	assert.Equal(t, Missing, Text(nil))
	assert.Equal(t, "5", Text(5.0))
	assert.Equal(t, "3.1", Text(3.1))
	assert.Equal(t, "-0.25", Text(-0.25))
	assert.Equal(t, "1e+21", Text(1e21))
	assert.Equal(t, "abc", Text("abc"))
	assert.Equal(t, "", Text(""))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, "7", Text(7))
}
