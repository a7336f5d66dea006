package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNaive_StripsTimezone(t *testing.T) {
	// The mobile client sometimes appends an offset; the wall-clock part must
	// survive unchanged, never shifted.
	for _, raw := range []string{
		"2024-03-15T14:30:00",
		"2024-03-15T14:30:00+01:00",
		"2024-03-15T14:30:00Z",
	} {
		got, err := ParseNaive(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "2024-03-15T14:30:00", FormatNaive(got), raw)
	}
}

func TestParseNaive_DateOnly(t *testing.T) {
	got, err := ParseNaive("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15T00:00:00", FormatNaive(got))
}

func TestParseNaive_Invalid(t *testing.T) {
	_, err := ParseNaive("not-a-time")
	assert.Error(t, err)

	_, err = ParseNaive("")
	assert.Error(t, err)
}

func TestCanonMonth(t *testing.T) {
	cases := map[string]string{
		"2024-03":    "2024-03",
		"2024/3":     "2024-03",
		"2024-3":     "2024-03",
		"2024-03-15": "2024-03",
		" 2024-12 ":  "2024-12",
	}
	for raw, want := range cases {
		assert.Equal(t, want, CanonMonth(raw), raw)
	}

	// Garbage passes through trimmed; downstream lookups just find nothing.
	assert.Equal(t, "banana", CanonMonth(" banana "))
	assert.Equal(t, "2024-13", CanonMonth("2024-13"))
}

func TestMonthBounds(t *testing.T) {
	from, to, err := MonthBounds("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T00:00:00", from)
	assert.Equal(t, "2024-04-01T00:00:00", to)

	// December rolls into the next year.
	from, to, err = MonthBounds("2023-12")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-01T00:00:00", from)
	assert.Equal(t, "2024-01-01T00:00:00", to)

	_, _, err = MonthBounds("garbage")
	assert.Error(t, err)
}

func TestMonthsBack(t *testing.T) {
	now := time.Date(2024, 2, 20, 10, 0, 0, 0, time.Local)
	assert.Equal(t, []string{"2024-02", "2024-01", "2023-12"}, MonthsBack(now, 3))
	assert.Equal(t, []string{"2024-02"}, MonthsBack(now, 0))
}

func TestNaiveLayout_SortsChronologically(t *testing.T) {
	// Lexicographic order of the stored strings is the scheduling order; the
	// range queries depend on it.
	earlier := FormatNaive(time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local))
	later := FormatNaive(time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local))
	assert.Less(t, earlier, later)
}
