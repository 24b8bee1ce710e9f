package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
	}{
		{"iso", "2024-03-10"},
		{"slash", "2024/03/10"},
		{"us", "03/10/2024"},
		{"dotted european", "10.03.2024"},
		{"long form", "Mar 10, 2024"},
		{"surrounding whitespace", "  2024-03-10  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(want), "got %v", got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2024-13-45"} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "2024-03-10", FormatDate(d))
}

func TestDaysBetween(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", day(10), day(10), 0},
		{"adjacent", day(10), day(11), 1},
		{"order independent", day(15), day(10), 5},
		{"month boundary", time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysBetween(tc.a, tc.b))
		})
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 3, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
}
