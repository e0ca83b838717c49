package mapview

import (
	"encoding/json"
	"fmt"
	"maps"
	"sync"
)

// Style is an in-memory Surface. The browser page fetches its Document and
// replays the sources and layers onto a Mapbox GL map.
type Style struct {
	mu      sync.RWMutex
	sources map[string]Source
	layers  []Layer

	ready     chan struct{}
	readyOnce sync.Once
}

func NewStyle() *Style {
	return &Style{
		sources: make(map[string]Source),
		ready:   make(chan struct{}),
	}
}

// MarkReady fires the ready signal. Calling it more than once is harmless.
func (s *Style) MarkReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

func (s *Style) Ready() <-chan struct{} {
	return s.ready
}

func (s *Style) HasSource(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sources[name]
	return ok
}

func (s *Style) AddSource(name string, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sources[name]; ok {
		return fmt.Errorf("add source %q: %w", name, ErrDuplicateSource)
	}
	s.sources[name] = Source{Type: "geojson", Data: data}
	return nil
}

func (s *Style) HasLayer(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

func (s *Style) AddLayer(l Layer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(l.ID) >= 0 {
		return fmt.Errorf("add layer %q: %w", l.ID, ErrDuplicateLayer)
	}
	if _, ok := s.sources[l.Source]; !ok {
		return fmt.Errorf("add layer %q: %w %q", l.ID, ErrUnknownSource, l.Source)
	}
	l.Layout = maps.Clone(l.Layout)
	if l.Layout == nil {
		l.Layout = map[string]any{}
	}
	if _, ok := l.Layout["visibility"]; !ok {
		l.Layout["visibility"] = string(Visible)
	}
	s.layers = append(s.layers, l)
	return nil
}

func (s *Style) SetVisibility(layerID string, v Visibility) error {
	if v != Visible && v != Hidden {
		return ErrBadVisibility
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(layerID)
	if i < 0 {
		return fmt.Errorf("set visibility on %q: %w", layerID, ErrUnknownLayer)
	}
	s.layers[i].Layout["visibility"] = string(v)
	return nil
}

// Visibility reports a layer's visibility; false when the layer is unknown.
func (s *Style) Visibility(layerID string) (Visibility, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(layerID)
	if i < 0 {
		return "", false
	}
	v, _ := s.layers[i].Layout["visibility"].(string)
	return Visibility(v), true
}

// VisibilityMap returns every layer's visibility keyed by layer id.
func (s *Style) VisibilityMap() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.layers))
	for _, l := range s.layers {
		v, _ := l.Layout["visibility"].(string)
		out[l.ID] = v
	}
	return out
}

// Document is the serializable state of a Style.
type Document struct {
	Sources map[string]Source `json:"sources"`
	Layers  []Layer           `json:"layers"`
}

// Document copies the registered sources and layers in registration order.
func (s *Style) Document() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layers := make([]Layer, len(s.layers))
	for i, l := range s.layers {
		l.Layout = maps.Clone(l.Layout)
		layers[i] = l
	}
	return Document{
		Sources: maps.Clone(s.sources),
		Layers:  layers,
	}
}

// LayerCount returns how many layers are registered.
func (s *Style) LayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.layers)
}

func (s *Style) indexOf(id string) int {
	for i, l := range s.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}
