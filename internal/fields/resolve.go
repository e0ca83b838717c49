// Package fields pulls logical attributes (identifier, magnitude, tsunami level,
// time) out of features whose property schema is not known in advance.
package fields

import "github.com/mr1hm/go-quake-viewer/internal/models"

// Missing is shown wherever a value could not be resolved.
const Missing = "—"

// Accessor reads one candidate value from a feature. nil means absent.
type Accessor func(f models.Feature) any

// Resolver picks a value out of a property map, nil when nothing matched.
type Resolver func(p models.Properties) any

// Key reads a single property.
func Key(name string) Accessor {
	return func(f models.Feature) any {
		return f.Properties[name]
	}
}

// FeatureID reads the top-level feature id.
func FeatureID(f models.Feature) any {
	return f.ID
}

// Probe tries each accessor in order and returns the first non-nil value.
// JSON null and absent keys are skipped; zero values are not.
func Probe(f models.Feature, candidates ...Accessor) any {
	for _, get := range candidates {
		if v := get(f); v != nil {
			return v
		}
	}
	return nil
}

var (
	idCandidates           = []Accessor{FeatureID, Key("id"), Key("ID"), Key("event_id"), Key("EventID")}
	magnitudeCandidates    = []Accessor{Key("mag"), Key("magnitude"), Key("Magnitude"), Key("M")}
	tsunamiLevelCandidates = []Accessor{Key("tsunami_level"), Key("tsunamiLevel"), Key("level"), Key("Level")}
	timeCandidates         = []Accessor{Key("time"), Key("timestamp"), Key("date"), Key("Date")}
)

// ResolveID returns the feature identifier as display text, or Missing.
func ResolveID(f models.Feature) string {
	v := Probe(f, idCandidates...)
	if v == nil {
		return Missing
	}
	return Text(v)
}

// ResolveMagnitude returns the earthquake magnitude, or nil.
func ResolveMagnitude(p models.Properties) any {
	return Probe(models.Feature{Properties: p}, magnitudeCandidates...)
}

// ResolveTsunamiLevel returns the tsunami severity level, or nil.
func ResolveTsunamiLevel(p models.Properties) any {
	return Probe(models.Feature{Properties: p}, tsunamiLevelCandidates...)
}

// ResolveTime returns the raw time value, or Missing.
func ResolveTime(p models.Properties) any {
	if v := Probe(models.Feature{Properties: p}, timeCandidates...); v != nil {
		return v
	}
	return Missing
}

// Record is the per-render projection of one feature.
type Record struct {
	ID        string
	Secondary any
	RawTime   any
}

// Resolve projects a feature using secondary for the second column.
func Resolve(f models.Feature, secondary Resolver) Record {
	r := Record{
		ID:      ResolveID(f),
		RawTime: ResolveTime(f.Properties),
	}
	if secondary != nil {
		r.Secondary = secondary(f.Properties)
	}
	return r
}
