package models

import (
	"fmt"
	"strings"
	"time"
)

// NaiveLayout is the wall-clock layout used for booking times.
//
// Booking times are deliberately naive local time: the companion mobile client
// sends wall-clock timestamps and displays them back verbatim, so the backend
// must never convert them to UTC. They are stored as strings in this layout,
// which also sorts lexicographically in scheduled order.
const NaiveLayout = "2006-01-02T15:04:05"

// MonthLayout is the canonical "YYYY-MM" ledger month key.
const MonthLayout = "2006-01"

// ParseNaive parses a client-supplied timestamp into naive local wall-clock
// form. Any timezone offset ("+01:00", "Z") is stripped, not applied.
func ParseNaive(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(NaiveLayout) {
		s = s[:len(NaiveLayout)]
	}
	t, err := time.ParseInLocation(NaiveLayout, s, time.Local)
	if err != nil {
		// Date-only input gets midnight.
		if d, derr := time.ParseInLocation("2006-01-02", s, time.Local); derr == nil {
			return d, nil
		}
		return time.Time{}, fmt.Errorf("invalid naive timestamp %q: %w", s, err)
	}
	return t, nil
}

// FormatNaive renders t in the naive wall-clock layout.
func FormatNaive(t time.Time) string {
	return t.Format(NaiveLayout)
}

// CanonMonth normalises a raw month string to "YYYY-MM": it accepts "2024/3",
// "2024-3", "2024-03-15" and returns "2024-03". Unparseable input is returned
// trimmed so the caller's lookup simply finds nothing.
func CanonMonth(raw string) string {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "/", "-"))
	parts := strings.SplitN(s, "-", 3)
	if len(parts) < 2 || len(parts[0]) != 4 {
		return s
	}
	var y, m int
	if _, err := fmt.Sscanf(parts[0], "%d", &y); err != nil {
		return s
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil || m < 1 || m > 12 {
		return s
	}
	return fmt.Sprintf("%04d-%02d", y, m)
}

// MonthBounds returns the naive-layout range [from, to) covering the given
// "YYYY-MM" month, suitable for lexicographic range queries on scheduled_at.
func MonthBounds(ym string) (from, to string, err error) {
	t, err := time.ParseInLocation(MonthLayout, ym, time.Local)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: %w", ym, err)
	}
	return FormatNaive(t), FormatNaive(t.AddDate(0, 1, 0)), nil
}

// MonthKey returns the "YYYY-MM" key for t.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthsBack returns the n month keys ending at (and including) the month of
// now, most recent first.
func MonthsBack(now time.Time, n int) []string {
	if n < 1 {
		n = 1
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, MonthKey(first.AddDate(0, -i, 0)))
	}
	return keys
}
