package loader

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Unit suffixes as written by the export. The suffix is expected whenever
// the field is non-empty; its absence is a defect, not a format variant.
const (
	suffixKcal = " kcal"
	suffixDegF = " degF"
)

// Timestamp layouts seen in Apple Health exports, most common first.
var timeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// coerceTime parses a timestamp field. ok is false when the value matches
// none of the known layouts.
func coerceTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// coerceFloat parses a plain numeric field. NaN and Inf are rejected along
// with non-numeric text, so "NaN" degrades to a missing value.
func coerceFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// coerceUnitFloat strips the expected unit suffix and parses the rest.
// The suffix must match literally, separating space included; "250kcal"
// is a defect, not a format variant. The caller tallies it rather than
// guessing at the unit.
func coerceUnitFloat(s, suffix string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, suffix) {
		return 0, false
	}
	return coerceFloat(strings.TrimSuffix(s, suffix))
}

// hasUnitSuffix reports whether the value carries the expected suffix.
func hasUnitSuffix(s, suffix string) bool {
	return strings.HasSuffix(strings.TrimSpace(s), suffix)
}
