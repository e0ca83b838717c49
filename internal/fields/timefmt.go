package fields

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// DisplayLayout is the layout every successfully parsed time is rendered with.
const DisplayLayout = "1/2/2006, 3:04:05 PM"

// maxEpochMillis is the largest representable instant, ±100,000,000 days.
const maxEpochMillis = 8.64e15

// location is the display zone. Set once at startup via SetLocation.
var location = time.Local

// SetLocation swaps the display zone. Pass nil to reset to the local zone.
func SetLocation(loc *time.Location) {
	if loc == nil {
		location = time.Local
		return
	}
	location = loc
}

// zoned layouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	time.UnixDate,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
}

// localLayouts are interpreted in the display zone.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/1/2",
	"1/2/2006 15:04:05",
	"1/2/2006, 3:04:05 PM",
	"1/2/2006",
	time.ANSIC,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2 2006 15:04:05",
}

// FormatTime renders an epoch-millisecond number or a date-like string for
// display. Anything that cannot be read as a date comes back as plain text.
func FormatTime(v any) string {
	switch t := v.(type) {
	case float64:
		return formatEpochMillis(t, Text(t))
	case float32:
		return formatEpochMillis(float64(t), Text(t))
	case int:
		return formatEpochMillis(float64(t), Text(t))
	case int64:
		return formatEpochMillis(float64(t), Text(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return formatEpochMillis(f, t.String())
	}

	s := Text(v)
	if ts, ok := parseDate(s); ok {
		return ts.In(location).Format(DisplayLayout)
	}
	return s
}

func formatEpochMillis(ms float64, fallback string) string {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxEpochMillis {
		return fallback
	}
	return time.UnixMilli(int64(math.Trunc(ms))).In(location).Format(DisplayLayout)
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// ISO date-only forms are UTC midnight.
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, true
	}
	for _, layout := range zonedLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	for _, layout := range localLayouts {
		if ts, err := time.ParseInLocation(layout, s, location); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
