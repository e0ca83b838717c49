// Package dataset holds the loaded feature collections and the single
// "active dataset" selector consulted by both the map and the table.
package dataset

import (
	"sync"

	"github.com/mr1hm/go-quake-viewer/internal/fields"
	"github.com/mr1hm/go-quake-viewer/internal/models"
)

type Key string

const (
	Earthquakes Key = "earthquakes"
	Tsunami     Key = "tsunami"
)

// Keys lists the recognized datasets in display order.
var Keys = []Key{Earthquakes, Tsunami}

// ParseKey reports whether s names a recognized dataset.
func ParseKey(s string) (Key, bool) {
	switch Key(s) {
	case Earthquakes, Tsunami:
		return Key(s), true
	default:
		return "", false
	}
}

// Label is the second table column's header for the dataset.
func (k Key) Label() string {
	if k == Tsunami {
		return "tsunami_level"
	}
	return "magnitude"
}

func (k Key) String() string {
	return string(k)
}

// Registry owns both collections and the active selector. The coordinator is
// the only writer; HTTP handlers read concurrently.
type Registry struct {
	mu          sync.RWMutex
	active      Key
	collections map[Key]models.FeatureCollection
}

func NewRegistry() *Registry {
	return &Registry{
		active:      Earthquakes,
		collections: make(map[Key]models.FeatureCollection, len(Keys)),
	}
}

// Load stores the two event collections, replacing anything loaded before.
func (r *Registry) Load(earthquakes, tsunami models.FeatureCollection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collections[Earthquakes] = earthquakes
	r.collections[Tsunami] = tsunami
}

// SetActive switches the selector. Unknown keys are ignored and reported false.
func (r *Registry) SetActive(key string) bool {
	k, ok := ParseKey(key)
	if !ok {
		return false
	}
	r.mu.Lock()
	r.active = k
	r.mu.Unlock()
	return true
}

func (r *Registry) Active() Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// ActiveCollection returns the collection the selector points at. Before Load
// it is an empty collection.
func (r *Registry) ActiveCollection() models.FeatureCollection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collections[r.active]
}

// Collection returns a collection by key.
func (r *Registry) Collection(k Key) (models.FeatureCollection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fc, ok := r.collections[k]
	return fc, ok
}

// ColumnLabel is "tsunami_level" while tsunami is active, else "magnitude".
func (r *Registry) ColumnLabel() string {
	return r.Active().Label()
}

// SecondaryResolver picks the resolver for the table's second column.
func (r *Registry) SecondaryResolver() fields.Resolver {
	if r.Active() == Tsunami {
		return fields.ResolveTsunamiLevel
	}
	return fields.ResolveMagnitude
}
