package stats

import (
	"testing"

	"github.com/verode/fitstat/internal/loader"
	"github.com/verode/fitstat/internal/model"
)

func TestBuildReportActivities(t *testing.T) {
	table := model.NewTable([]model.Workout{
		{ActivityType: "Running", TotalEnergyBurned: model.Float(200)},
		{ActivityType: "Running", TotalEnergyBurned: model.Float(400)},
		{ActivityType: "Running"}, // counted, but no energy
		{ActivityType: "Walking", TotalEnergyBurned: model.Float(100)},
		{TotalEnergyBurned: model.Float(999)}, // no activity: excluded
	})

	report := BuildReport(table, loader.Diagnostics{Rows: 5})
	if len(report.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(report.Activities))
	}
	running := report.Activities[0]
	if running.Activity != "Running" || running.Count != 3 {
		t.Fatalf("unexpected first activity: %+v", running)
	}
	if running.EnergyCount != 2 || running.MeanEnergy != 300 {
		t.Fatalf("unexpected energy mean: %+v", running)
	}
	walking := report.Activities[1]
	if walking.Activity != "Walking" || walking.Count != 1 || walking.MeanEnergy != 100 {
		t.Fatalf("unexpected second activity: %+v", walking)
	}
}

func TestBuildReportScatterDropsIncompletePairs(t *testing.T) {
	table := model.NewTable([]model.Workout{
		{ActivityType: "Running", TotalEnergyBurned: model.Float(200), DurationMinutes: model.Float(30)},
		{ActivityType: "Running", TotalEnergyBurned: model.Float(300)}, // no duration
		{ActivityType: "Running", DurationMinutes: model.Float(10)},    // no energy
	})

	report := BuildReport(table, loader.Diagnostics{})
	if len(report.DurationEnergy) != 1 {
		t.Fatalf("expected one series, got %d", len(report.DurationEnergy))
	}
	s := report.DurationEnergy[0]
	if s.Name != "Running" || len(s.X) != 1 || s.X[0] != 30 || s.Y[0] != 200 {
		t.Fatalf("unexpected series: %+v", s)
	}
}

func TestBuildReportTimeOfDay(t *testing.T) {
	table := model.NewTable([]model.Workout{
		{ActivityType: "Yoga", TimeCategory: model.CategoryMorning, TotalEnergyBurned: model.Float(90)},
		{ActivityType: "Yoga", TimeCategory: model.CategoryMorning, TotalEnergyBurned: model.Float(110)},
		{ActivityType: "Yoga", TimeCategory: model.CategoryNone, TotalEnergyBurned: model.Float(500)},
	})

	report := BuildReport(table, loader.Diagnostics{})
	if len(report.TimeOfDay) != 1 {
		t.Fatalf("expected one group, got %d", len(report.TimeOfDay))
	}
	b := report.TimeOfDay[0]
	if b.Category != model.CategoryMorning || b.Activity != "Yoga" || b.Count != 2 {
		t.Fatalf("unexpected group: %+v", b)
	}
	if b.Min != 90 || b.Q1 != 95 || b.Median != 100 || b.Q3 != 105 || b.Max != 110 {
		t.Fatalf("unexpected five-number summary: %+v", b)
	}
}

func TestFivenum(t *testing.T) {
	minV, q1, med, q3, maxV := fivenum([]float64{1, 2, 3, 4, 5})
	if minV != 1 || q1 != 2 || med != 3 || q3 != 4 || maxV != 5 {
		t.Fatalf("unexpected summary: %v %v %v %v %v", minV, q1, med, q3, maxV)
	}
	if _, _, med, _, _ = fivenum([]float64{7}); med != 7 {
		t.Fatalf("unexpected single-value median: %v", med)
	}
}
