package fields

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withUTC(t *testing.T) {
	t.Helper()
	SetLocation(time.UTC)
	t.Cleanup(func() { SetLocation(nil) })
}

func TestFormatTime_EpochMillis(t *testing.T) {
	withUTC(t)

	got := FormatTime(1700000000000.0)
	assert.NotEmpty(t, got)
	assert.Equal(t, "11/14/2023, 10:13:20 PM", got)

	assert.Equal(t, "11/14/2023, 10:13:20 PM", FormatTime(int64(1700000000000)))
	assert.Equal(t, "11/14/2023, 10:13:20 PM", FormatTime(json.Number("1700000000000")))
	assert.Equal(t, "1/1/1970, 12:00:00 AM", FormatTime(0.0))
}

func TestFormatTime_EpochOutOfRange(t *testing.T) {
	withUTC(t)

	assert.Equal(t, "100000000000000000000", FormatTime(1e20))
	assert.Equal(t, "NaN", FormatTime(math.NaN()))
	assert.Equal(t, "Infinity", FormatTime(math.Inf(1)))
}

func TestFormatTime_Strings(t *testing.T) {
	withUTC(t)

	tests := []struct {
		in   string
		want string
	}{
		{"2017-11-22", "11/22/2017, 12:00:00 AM"},
		{"2017-11-22T03:04:05Z", "11/22/2017, 3:04:05 AM"},
		{"2017-11-22T12:04:05+09:00", "11/22/2017, 3:04:05 AM"},
		{"2017-11-22T03:04:05", "11/22/2017, 3:04:05 AM"},
		{"2017-11-22 15:30:00", "11/22/2017, 3:30:00 PM"},
		{"Wed, 22 Nov 2017 03:04:05 GMT", "11/22/2017, 3:04:05 AM"},
		{"11/22/2017", "11/22/2017, 12:00:00 AM"},
		{"November 22, 2017", "11/22/2017, 12:00:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.in))
		})
	}
}

func TestFormatTime_Fallback(t *testing.T) {
	withUTC(t)

	assert.Equal(t, "not-a-date", FormatTime("not-a-date"))
	assert.Equal(t, Missing, FormatTime(Missing))
	assert.Equal(t, "", FormatTime(""))
	assert.Equal(t, "true", FormatTime(true))
	assert.Equal(t, Missing, FormatTime(nil))
}

func TestFormatTime_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	SetLocation(tokyo)
	t.Cleanup(func() { SetLocation(nil) })

	assert.Equal(t, "11/15/2023, 7:13:20 AM", FormatTime(1700000000000.0))
}
