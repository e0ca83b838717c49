package models

import (
	"encoding/json"
	"fmt"
)

// Properties is a feature's free-form attribute map. No key is guaranteed.
type Properties map[string]any

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`

	// Raw is the document as it was loaded, handed to the map surface untouched.
	Raw json.RawMessage `json:"-"`
}

type Feature struct {
	Type       string          `json:"type"`
	ID         any             `json:"id,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties Properties      `json:"properties"`
}

// ParseFeatureCollection decodes a GeoJSON document. A bare Feature is wrapped
// into a one-element collection; geometry is never inspected.
func ParseFeatureCollection(data []byte) (FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return FeatureCollection{}, fmt.Errorf("error decoding geojson: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		var fc FeatureCollection
		if err := json.Unmarshal(data, &fc); err != nil {
			return FeatureCollection{}, fmt.Errorf("error decoding feature collection: %w", err)
		}
		if fc.Features == nil {
			fc.Features = []Feature{}
		}
		fc.Raw = json.RawMessage(data)
		return fc, nil
	case "Feature":
		var f Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return FeatureCollection{}, fmt.Errorf("error decoding feature: %w", err)
		}
		return FeatureCollection{
			Type:     "FeatureCollection",
			Features: []Feature{f},
			Raw:      json.RawMessage(data),
		}, nil
	default:
		return FeatureCollection{}, fmt.Errorf("unsupported geojson type: %q", head.Type)
	}
}

// Len returns the number of features.
func (fc FeatureCollection) Len() int {
	return len(fc.Features)
}

// Document returns the collection as JSON, preferring the bytes it was loaded from.
func (fc FeatureCollection) Document() (json.RawMessage, error) {
	if len(fc.Raw) > 0 {
		return fc.Raw, nil
	}
	if fc.Type == "" {
		fc.Type = "FeatureCollection"
	}
	if fc.Features == nil {
		fc.Features = []Feature{}
	}
	b, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("error encoding feature collection: %w", err)
	}
	return b, nil
}
