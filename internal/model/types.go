// Package model defines shared data structures.
package model

import "time"

// TimeCategory is one of the four fixed hour-of-day buckets.
type TimeCategory string

// Time-of-day buckets assigned from the session start hour. The empty
// string means no bucket (start hour unknown).
const (
	CategoryNone      TimeCategory = ""
	CategoryNight     TimeCategory = "Night (0-6)"
	CategoryMorning   TimeCategory = "Morning (6-12)"
	CategoryAfternoon TimeCategory = "Afternoon (12-18)"
	CategoryEvening   TimeCategory = "Evening (18-24)"
)

// Column identifies a derivable column of the workout table.
type Column string

// Derived columns tracked on the table.
const (
	ColDurationMinutes Column = "durationMinutes"
	ColHour            Column = "hour"
	ColMonth           Column = "month"
	ColDayOfWeek       Column = "dayOfWeek"
	ColTimeCategory    Column = "timeCategory"
)

// Workout is one canonical record of the export: a single session after
// type coercion and imputation. Pointer fields are optional; nil marks a
// value that was missing or failed coercion. TotalDistance and
// WeatherTemp are plain values because imputation guarantees them.
type Workout struct {
	StartDate         *time.Time
	EndDate           *time.Time
	DurationSec       *float64
	DurationMinutes   *float64
	TotalDistance     float64
	TotalEnergyBurned *float64
	ActivityType      string
	AverageMETs       *float64
	WeatherTemp       float64
	WeatherHumidity   *float64
	Hour              *int
	Month             *int
	DayOfWeek         *int // Monday = 0
	TimeCategory      TimeCategory
}

// Table is the canonical record set plus the set of derived columns it
// already carries. The column set is what makes repeated derivation a
// no-op; a derivation stage never runs for a column that is present.
type Table struct {
	Workouts []Workout

	columns map[Column]struct{}
}

// NewTable wraps the given records with an empty derived-column set.
func NewTable(workouts []Workout) *Table {
	return &Table{
		Workouts: workouts,
		columns:  map[Column]struct{}{},
	}
}

// Has reports whether the derived column is already present.
func (t *Table) Has(col Column) bool {
	_, ok := t.columns[col]
	return ok
}

// Mark records that the derived columns are now present.
func (t *Table) Mark(cols ...Column) {
	for _, col := range cols {
		t.columns[col] = struct{}{}
	}
}

// ReportConfig defines display settings for report rendering.
type ReportConfig struct {
	File       string
	PlotWidth  int
	PlotHeight int
	Color      bool
}

// Ptr helpers for optional fields, mostly used by tests and the loader.

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Time returns a pointer to v.
func Time(v time.Time) *time.Time { return &v }
