package loader

import (
	"testing"
	"time"
)

func TestCoerceUnitFloat(t *testing.T) {
	tests := []struct {
		in     string
		suffix string
		want   float64
		ok     bool
	}{
		{"250 kcal", suffixKcal, 250.0, true},
		{"68 degF", suffixDegF, 68.0, true},
		{"68.5 degF", suffixDegF, 68.5, true},
		{"250", suffixKcal, 0, false},
		{"250kcal", suffixKcal, 0, false},
		{"68degF", suffixDegF, 0, false},
		{"250 cal", suffixKcal, 0, false},
		{"abc kcal", suffixKcal, 0, false},
		{"", suffixKcal, 0, false},
	}
	for _, tt := range tests {
		got, ok := coerceUnitFloat(tt.in, tt.suffix)
		if ok != tt.ok {
			t.Fatalf("coerceUnitFloat(%q): ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if ok && got != tt.want {
			t.Fatalf("coerceUnitFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCoerceFloatRejectsNonFinite(t *testing.T) {
	for _, in := range []string{"NaN", "nan", "Inf", "-Inf", "abc", ""} {
		if _, ok := coerceFloat(in); ok {
			t.Fatalf("coerceFloat(%q) unexpectedly succeeded", in)
		}
	}
	if v, ok := coerceFloat("600"); !ok || v != 600 {
		t.Fatalf("coerceFloat(600) = %v, %v", v, ok)
	}
}

func TestCoerceTime(t *testing.T) {
	ts, ok := coerceTime("2023-07-15 08:30:00 -0700")
	if !ok {
		t.Fatalf("expected timestamp to parse")
	}
	if ts.Hour() != 8 || ts.Month() != time.July {
		t.Fatalf("unexpected timestamp: %v", ts)
	}
	if _, ok := coerceTime("not a date"); ok {
		t.Fatalf("expected parse failure")
	}
}
