// Package mapview describes the map rendering surface the viewer drives and
// provides an in-memory style document that a Mapbox GL page can replay.
package mapview

import (
	"encoding/json"
	"errors"
)

var (
	ErrDuplicateSource = errors.New("source already exists")
	ErrDuplicateLayer  = errors.New("layer already exists")
	ErrUnknownSource   = errors.New("unknown source")
	ErrUnknownLayer    = errors.New("unknown layer")
	ErrBadVisibility   = errors.New("visibility must be \"visible\" or \"none\"")
)

type Visibility string

const (
	Visible Visibility = "visible"
	Hidden  Visibility = "none"
)

type LayerType string

const (
	LayerFill   LayerType = "fill"
	LayerCircle LayerType = "circle"
)

// Source is a named GeoJSON-backed source.
type Source struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Layer is a named, typed layer bound to a source.
type Layer struct {
	ID     string         `json:"id"`
	Type   LayerType      `json:"type"`
	Source string         `json:"source"`
	Layout map[string]any `json:"layout,omitempty"`
	Paint  map[string]any `json:"paint,omitempty"`
}

// Surface is the map the viewer registers sources and layers on. Nothing may
// be registered before Ready is closed.
type Surface interface {
	Ready() <-chan struct{}
	HasSource(name string) bool
	AddSource(name string, data json.RawMessage) error
	HasLayer(id string) bool
	AddLayer(l Layer) error
	SetVisibility(layerID string, v Visibility) error
}

// EnsureSource adds a source unless one with that name exists.
func EnsureSource(s Surface, name string, data json.RawMessage) error {
	if s.HasSource(name) {
		return nil
	}
	return s.AddSource(name, data)
}

// EnsureLayer adds a layer unless one with that id exists.
func EnsureLayer(s Surface, l Layer) error {
	if s.HasLayer(l.ID) {
		return nil
	}
	return s.AddLayer(l)
}
