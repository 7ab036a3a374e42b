package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verode/fitstat/internal/derive"
	"github.com/verode/fitstat/internal/loader"
	"github.com/verode/fitstat/internal/model"
)

func TestRenderDiagnostics(t *testing.T) {
	diag := loader.Diagnostics{
		Rows:              3,
		Missing:           map[string]int{"totalDistance": 2},
		StartDateFailures: 1,
		SuffixDefects:     map[string]int{"totalEnergyBurned": 1},
		CoercionFailures:  map[string]int{"duration": 1},
	}
	var buf bytes.Buffer
	if err := RenderDiagnostics(&buf, diag); err != nil {
		t.Fatalf("RenderDiagnostics failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Rows loaded: 3",
		"totalDistance",
		"1 startDate values could not be parsed.",
		"1 duration values failed to parse.",
		"1 totalEnergyBurned values lacked the expected unit suffix.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	report := Report{
		Activities: []ActivitySummary{
			{Activity: "Running", Count: 3, MeanEnergy: 300, EnergyCount: 2},
			{Activity: "Walking", Count: 1},
		},
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Workouts by Activity Type") {
		t.Fatalf("expected heading, got:\n%s", out)
	}
	if !strings.Contains(out, "300.0") {
		t.Fatalf("expected mean energy, got:\n%s", out)
	}
	// No usable energy values: mean shown as a dash, not zero.
	walkingLine := ""
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Walking") {
			walkingLine = line
		}
	}
	if !strings.HasSuffix(walkingLine, "-") {
		t.Fatalf("expected dash for missing mean, got: %q", walkingLine)
	}
}

func TestRenderMonthlyIncludesZeroActivities(t *testing.T) {
	monthly := derive.MonthlyCounts{
		Months:     []int{1, 3},
		Activities: []string{"Running", "Walking"},
		Counts:     [][]int{{2, 0}, {0, 1}},
	}
	var buf bytes.Buffer
	if err := RenderMonthly(&buf, monthly, 60); err != nil {
		t.Fatalf("RenderMonthly failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Jan") || !strings.Contains(out, "Mar") {
		t.Fatalf("expected month labels, got:\n%s", out)
	}
	// Both activities stay in the legend even where their count is zero.
	if !strings.Contains(out, "Running") || !strings.Contains(out, "Walking") {
		t.Fatalf("expected both activities in legend, got:\n%s", out)
	}
}

func TestRenderTrendsReportsSkipped(t *testing.T) {
	trends := derive.TrendResult{
		Trends:  []derive.Trend{{Activity: "Running", Slope: 50, Intercept: 10, Points: 3}},
		Skipped: []string{"Walking"},
	}
	var buf bytes.Buffer
	if err := RenderTrends(&buf, trends); err != nil {
		t.Fatalf("RenderTrends failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "50.00") || !strings.Contains(out, "10.00") {
		t.Fatalf("expected fit values, got:\n%s", out)
	}
	if !strings.Contains(out, "Skipped (fewer than two usable points): Walking") {
		t.Fatalf("expected skipped note, got:\n%s", out)
	}
}

func TestRenderTimeOfDay(t *testing.T) {
	report := Report{
		TimeOfDay: []BoxSummary{
			{Category: model.CategoryMorning, Activity: "Yoga", Count: 2, Min: 90, Q1: 95, Median: 100, Q3: 105, Max: 110},
		},
	}
	var buf bytes.Buffer
	if err := RenderTimeOfDay(&buf, report); err != nil {
		t.Fatalf("RenderTimeOfDay failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Morning (6-12)") || !strings.Contains(out, "100.0") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
