// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/verode/fitstat/internal/derive"
	"github.com/verode/fitstat/internal/loader"
)

// Fill characters for stacked bars, one per activity, so bars stay
// readable without color.
var barFills = []rune{'#', '=', '+', '*', '%', '@'}

// RenderDiagnostics prints load diagnostics: row count, raw missing
// values per column, and coercion trouble. Operator visibility only.
func RenderDiagnostics(w io.Writer, diag loader.Diagnostics) error {
	if _, err := fmt.Fprintf(w, "Rows loaded: %d\n", diag.Rows); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "Missing values per column:"); err != nil {
		return err
	}
	for _, col := range loader.Columns() {
		if _, err := fmt.Fprintf(w, "  %-22s %d\n", col, diag.Missing[col]); err != nil {
			return err
		}
	}
	if diag.StartDateFailures > 0 {
		if _, err := fmt.Fprintf(w, "%d startDate values could not be parsed.\n", diag.StartDateFailures); err != nil {
			return err
		}
	}
	for _, col := range loader.Columns() {
		if n := diag.CoercionFailures[col]; n > 0 {
			if _, err := fmt.Fprintf(w, "%d %s values failed to parse.\n", n, col); err != nil {
				return err
			}
		}
	}
	for _, col := range loader.Columns() {
		if n := diag.SuffixDefects[col]; n > 0 {
			if _, err := fmt.Fprintf(w, "%d %s values lacked the expected unit suffix.\n", n, col); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSummary prints per-activity counts and mean calories burned.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Activities) == 0 {
		_, err := fmt.Fprintln(w, "No workouts found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Workouts by Activity Type"); err != nil {
		return err
	}
	headers := []string{"Activity", "Workouts", "Avg kcal"}
	rows := make([][]string, 0, len(report.Activities))
	for _, s := range report.Activities {
		avg := "-"
		if s.EnergyCount > 0 {
			avg = fmt.Sprintf("%.1f", s.MeanEnergy)
		}
		rows = append(rows, []string{s.Activity, fmt.Sprintf("%d", s.Count), avg})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTimeOfDay prints five-number summaries of calories burned per
// time bucket and activity.
func RenderTimeOfDay(w io.Writer, report Report) error {
	if _, err := fmt.Fprintln(w, "Calories Burned by Time of Day"); err != nil {
		return err
	}
	if len(report.TimeOfDay) == 0 {
		if _, err := fmt.Fprintln(w, "No data."); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "")
		return err
	}
	headers := []string{"Time", "Activity", "Workouts", "Min", "Q1", "Median", "Q3", "Max"}
	rows := make([][]string, 0, len(report.TimeOfDay))
	for _, b := range report.TimeOfDay {
		rows = append(rows, []string{
			string(b.Category),
			b.Activity,
			fmt.Sprintf("%d", b.Count),
			fmt.Sprintf("%.1f", b.Min),
			fmt.Sprintf("%.1f", b.Q1),
			fmt.Sprintf("%.1f", b.Median),
			fmt.Sprintf("%.1f", b.Q3),
			fmt.Sprintf("%.1f", b.Max),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderMonthly prints the monthly cross-tab as stacked horizontal bars,
// one bar per month, one fill character per activity.
func RenderMonthly(w io.Writer, monthly derive.MonthlyCounts, width int) error {
	if _, err := fmt.Fprintln(w, "Workout Frequency by Month"); err != nil {
		return err
	}
	if len(monthly.Months) == 0 || len(monthly.Activities) == 0 {
		if _, err := fmt.Fprintln(w, "No data."); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "")
		return err
	}
	if width <= 0 {
		width = terminalWidth()
	}
	barWidth := width - 12
	if barWidth < minPlotWidth {
		barWidth = minPlotWidth
	}

	maxTotal := 0
	for _, row := range monthly.Counts {
		total := 0
		for _, n := range row {
			total += n
		}
		if total > maxTotal {
			maxTotal = total
		}
	}
	if maxTotal == 0 {
		maxTotal = 1
	}

	for i, m := range monthly.Months {
		var bar strings.Builder
		total := 0
		for j, n := range monthly.Counts[i] {
			total += n
			segment := n * barWidth / maxTotal
			bar.WriteString(strings.Repeat(string(barFills[j%len(barFills)]), segment))
		}
		if _, err := fmt.Fprintf(w, "%-4s %-*s %d\n", monthLabel(m), barWidth, bar.String(), total); err != nil {
			return err
		}
	}

	parts := make([]string, 0, len(monthly.Activities))
	for j, activity := range monthly.Activities {
		parts = append(parts, fmt.Sprintf("%c %s", barFills[j%len(barFills)], activity))
	}
	if _, err := fmt.Fprintln(w, "Legend: "+strings.Join(parts, "  ")); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrends prints the fitted lines and the activities that were
// skipped for lack of data.
func RenderTrends(w io.Writer, trends derive.TrendResult) error {
	if _, err := fmt.Fprintln(w, "Trend Lines (kcal vs METs)"); err != nil {
		return err
	}
	if len(trends.Trends) == 0 {
		if _, err := fmt.Fprintln(w, "No activity has enough points for a fit."); err != nil {
			return err
		}
	} else {
		headers := []string{"Activity", "Slope", "Intercept", "Points"}
		rows := make([][]string, 0, len(trends.Trends))
		for _, t := range trends.Trends {
			rows = append(rows, []string{
				t.Activity,
				fmt.Sprintf("%.2f", t.Slope),
				fmt.Sprintf("%.2f", t.Intercept),
				fmt.Sprintf("%d", t.Points),
			})
		}
		rightAlign := map[int]bool{1: true, 2: true, 3: true}
		for _, line := range formatTable(headers, rows, rightAlign) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if len(trends.Skipped) > 0 {
		if _, err := fmt.Fprintf(w, "Skipped (fewer than two usable points): %s\n", strings.Join(trends.Skipped, ", ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// TrendOverlays adapts fitted trends for scatter rendering.
func TrendOverlays(trends derive.TrendResult) []TrendOverlay {
	out := make([]TrendOverlay, 0, len(trends.Trends))
	for _, t := range trends.Trends {
		out = append(out, TrendOverlay{Name: t.Activity, Slope: t.Slope, Intercept: t.Intercept})
	}
	return out
}

func monthLabel(m int) string {
	if m < 1 || m > 12 {
		return fmt.Sprintf("%d", m)
	}
	return time.Month(m).String()[:3]
}
