// Package derive computes secondary features over the canonical table.
package derive

import (
	"github.com/verode/fitstat/internal/model"
)

// A Stage derives one group of columns. A stage runs only once every
// column it needs is present on the table; in the fixed pipeline the
// providing stages are ordered first.
type Stage struct {
	Name     string
	Needs    []model.Column
	Provides []model.Column
	Run      func(t *model.Table)
}

// Pipeline returns the fixed, ordered derivation pipeline.
func Pipeline() []Stage {
	return []Stage{
		{
			Name:     "duration-minutes",
			Provides: []model.Column{model.ColDurationMinutes},
			Run:      deriveDurationMinutes,
		},
		{
			Name:     "calendar",
			Provides: []model.Column{model.ColHour, model.ColMonth, model.ColDayOfWeek},
			Run:      deriveCalendar,
		},
		{
			Name:     "time-category",
			Needs:    []model.Column{model.ColHour},
			Provides: []model.Column{model.ColTimeCategory},
			Run:      deriveTimeCategory,
		},
	}
}

// Apply runs every pipeline stage whose columns are not yet present.
// Applying twice is a no-op: presence is tracked on the table, so a
// column is derived exactly once.
func Apply(t *model.Table) {
	applyStages(t, Pipeline())
}

func applyStages(t *model.Table, stages []Stage) {
	for _, stage := range stages {
		if hasAll(t, stage.Provides) {
			continue
		}
		if !hasAll(t, stage.Needs) {
			continue
		}
		stage.Run(t)
		t.Mark(stage.Provides...)
	}
}

func hasAll(t *model.Table, cols []model.Column) bool {
	for _, col := range cols {
		if !t.Has(col) {
			return false
		}
	}
	return true
}

func deriveDurationMinutes(t *model.Table) {
	for i := range t.Workouts {
		w := &t.Workouts[i]
		if w.DurationSec == nil {
			continue
		}
		w.DurationMinutes = model.Float(*w.DurationSec / 60)
	}
}

func deriveCalendar(t *model.Table) {
	for i := range t.Workouts {
		w := &t.Workouts[i]
		if w.StartDate == nil {
			continue
		}
		w.Hour = model.Int(w.StartDate.Hour())
		w.Month = model.Int(int(w.StartDate.Month()))
		w.DayOfWeek = model.Int((int(w.StartDate.Weekday()) + 6) % 7)
	}
}

func deriveTimeCategory(t *model.Table) {
	for i := range t.Workouts {
		w := &t.Workouts[i]
		if w.Hour == nil {
			continue
		}
		if cat, ok := CategoryForHour(*w.Hour); ok {
			w.TimeCategory = cat
		}
	}
}

// CategoryForHour assigns the time-of-day bucket for an hour using
// half-open binning; only the last bucket includes its upper bound.
// Hours outside [0,24] get no bucket.
func CategoryForHour(hour int) (model.TimeCategory, bool) {
	switch {
	case hour >= 0 && hour < 6:
		return model.CategoryNight, true
	case hour >= 6 && hour < 12:
		return model.CategoryMorning, true
	case hour >= 12 && hour < 18:
		return model.CategoryAfternoon, true
	case hour >= 18 && hour <= 24:
		return model.CategoryEvening, true
	}
	return model.CategoryNone, false
}

// Categories lists the buckets in display order.
func Categories() []model.TimeCategory {
	return []model.TimeCategory{
		model.CategoryNight,
		model.CategoryMorning,
		model.CategoryAfternoon,
		model.CategoryEvening,
	}
}
