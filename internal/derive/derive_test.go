package derive

import (
	"testing"
	"time"

	"github.com/verode/fitstat/internal/model"
)

func TestApplyDurationMinutes(t *testing.T) {
	table := model.NewTable([]model.Workout{
		{DurationSec: model.Float(600)},
		{},
		{DurationSec: model.Float(1200)},
	})
	Apply(table)

	ws := table.Workouts
	if ws[0].DurationMinutes == nil || *ws[0].DurationMinutes != 10 {
		t.Fatalf("unexpected minutes: %+v", ws[0].DurationMinutes)
	}
	if ws[1].DurationMinutes != nil {
		t.Fatalf("expected nil minutes for nil duration")
	}
	if ws[2].DurationMinutes == nil || *ws[2].DurationMinutes != 20 {
		t.Fatalf("unexpected minutes: %+v", ws[2].DurationMinutes)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	start := time.Date(2023, 7, 15, 8, 30, 0, 0, time.UTC)
	table := model.NewTable([]model.Workout{
		{StartDate: model.Time(start), DurationSec: model.Float(600)},
	})
	Apply(table)

	w := table.Workouts[0]
	// Tamper with a derived value; a second Apply must not recompute it.
	*table.Workouts[0].DurationMinutes = 99

	Apply(table)
	if *table.Workouts[0].DurationMinutes != 99 {
		t.Fatalf("expected second Apply to leave derived columns alone")
	}
	if table.Workouts[0].TimeCategory != w.TimeCategory {
		t.Fatalf("time category changed across Apply calls")
	}
}

func TestApplyCalendarBackfill(t *testing.T) {
	start := time.Date(2023, 7, 15, 8, 30, 0, 0, time.UTC) // a Saturday
	table := model.NewTable([]model.Workout{
		{StartDate: model.Time(start)},
		{},
	})
	Apply(table)

	w := table.Workouts[0]
	if w.Hour == nil || *w.Hour != 8 {
		t.Fatalf("unexpected hour: %+v", w.Hour)
	}
	if w.Month == nil || *w.Month != 7 {
		t.Fatalf("unexpected month: %+v", w.Month)
	}
	if w.DayOfWeek == nil || *w.DayOfWeek != 5 {
		t.Fatalf("unexpected day of week: %+v", w.DayOfWeek)
	}
	if w.TimeCategory != model.CategoryMorning {
		t.Fatalf("unexpected time category: %q", w.TimeCategory)
	}

	missing := table.Workouts[1]
	if missing.Hour != nil || missing.TimeCategory != model.CategoryNone {
		t.Fatalf("expected no calendar features without startDate")
	}
}

func TestApplyStagesGatesOnNeeds(t *testing.T) {
	ran := false
	stage := Stage{
		Name:     "wants-hour",
		Needs:    []model.Column{model.ColHour},
		Provides: []model.Column{model.ColTimeCategory},
		Run:      func(*model.Table) { ran = true },
	}
	table := model.NewTable(nil)

	applyStages(table, []Stage{stage})
	if ran {
		t.Fatalf("stage ran without its needed columns")
	}
	if table.Has(model.ColTimeCategory) {
		t.Fatalf("skipped stage must not mark its columns")
	}

	table.Mark(model.ColHour)
	applyStages(table, []Stage{stage})
	if !ran {
		t.Fatalf("stage did not run once its needs were present")
	}
	if !table.Has(model.ColTimeCategory) {
		t.Fatalf("expected provided column marked after run")
	}
}

func TestCategoryForHour(t *testing.T) {
	tests := []struct {
		hour int
		want model.TimeCategory
		ok   bool
	}{
		{0, model.CategoryNight, true},
		{5, model.CategoryNight, true},
		{6, model.CategoryMorning, true},
		{11, model.CategoryMorning, true},
		{12, model.CategoryAfternoon, true},
		{17, model.CategoryAfternoon, true},
		{18, model.CategoryEvening, true},
		{23, model.CategoryEvening, true},
		{24, model.CategoryEvening, true},
		{-1, model.CategoryNone, false},
		{25, model.CategoryNone, false},
	}
	for _, tt := range tests {
		got, ok := CategoryForHour(tt.hour)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("CategoryForHour(%d) = %q, %v; want %q, %v", tt.hour, got, ok, tt.want, tt.ok)
		}
	}
}
