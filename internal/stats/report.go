// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verode/fitstat/internal/derive"
	"github.com/verode/fitstat/internal/loader"
	"github.com/verode/fitstat/internal/model"
)

// ActivitySummary aggregates one activity type.
type ActivitySummary struct {
	Activity   string
	Count      int
	MeanEnergy float64
	// EnergyCount is the number of rows with a usable energy value; the
	// mean is taken over these only.
	EnergyCount int
}

// BoxSummary is a five-number summary of energy burned for one
// (time bucket, activity) group.
type BoxSummary struct {
	Category model.TimeCategory
	Activity string
	Count    int
	Min      float64
	Q1       float64
	Median   float64
	Q3       float64
	Max      float64
}

// ScatterSeries is one activity's point cloud for a scatter rendering.
type ScatterSeries struct {
	Name string
	X    []float64
	Y    []float64
}

// TrendOverlay is a fitted line drawn over a scatter.
type TrendOverlay struct {
	Name      string
	Slope     float64
	Intercept float64
}

// Report contains precomputed data for report rendering. Renderers
// consume it read-only; building it never mutates the table.
type Report struct {
	Diagnostics loader.Diagnostics
	Activities  []ActivitySummary
	Monthly     derive.MonthlyCounts
	Trends      derive.TrendResult

	DurationEnergy []ScatterSeries
	METsEnergy     []ScatterSeries
	TempEnergy     []ScatterSeries
	HumidityEnergy []ScatterSeries
	TimeOfDay      []BoxSummary
}

// BuildReport prepares every aggregate the renderers need from the
// enriched table. Rows without an activity type are excluded from all
// per-activity aggregation.
func BuildReport(t *model.Table, diag loader.Diagnostics) Report {
	return Report{
		Diagnostics: diag,
		Activities:  summarizeActivities(t),
		Monthly:     derive.CountMonthly(t),
		Trends:      derive.FitTrends(t),
		DurationEnergy: scatterByActivity(t, func(w model.Workout) (float64, bool) {
			if w.DurationMinutes == nil {
				return 0, false
			}
			return *w.DurationMinutes, true
		}),
		METsEnergy: scatterByActivity(t, func(w model.Workout) (float64, bool) {
			if w.AverageMETs == nil {
				return 0, false
			}
			return *w.AverageMETs, true
		}),
		TempEnergy: scatterByActivity(t, func(w model.Workout) (float64, bool) {
			return w.WeatherTemp, true
		}),
		HumidityEnergy: scatterByActivity(t, func(w model.Workout) (float64, bool) {
			if w.WeatherHumidity == nil {
				return 0, false
			}
			return *w.WeatherHumidity, true
		}),
		TimeOfDay: summarizeTimeOfDay(t),
	}
}

func summarizeActivities(t *model.Table) []ActivitySummary {
	byActivity := map[string]*ActivitySummary{}
	for _, w := range t.Workouts {
		if w.ActivityType == "" {
			continue
		}
		s := byActivity[w.ActivityType]
		if s == nil {
			s = &ActivitySummary{Activity: w.ActivityType}
			byActivity[w.ActivityType] = s
		}
		s.Count++
		if w.TotalEnergyBurned != nil {
			s.MeanEnergy += *w.TotalEnergyBurned
			s.EnergyCount++
		}
	}
	out := make([]ActivitySummary, 0, len(byActivity))
	for _, s := range byActivity {
		if s.EnergyCount > 0 {
			s.MeanEnergy /= float64(s.EnergyCount)
		}
		out = append(out, *s)
	}
	// Most frequent first, like value_counts output.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Activity < out[j].Activity
		}
		return out[i].Count > out[j].Count
	})
	return out
}

// scatterByActivity builds one series per activity of (x, energy) pairs,
// keeping only rows where both values are present.
func scatterByActivity(t *model.Table, x func(model.Workout) (float64, bool)) []ScatterSeries {
	byActivity := map[string]*ScatterSeries{}
	for _, w := range t.Workouts {
		if w.ActivityType == "" || w.TotalEnergyBurned == nil {
			continue
		}
		xv, ok := x(w)
		if !ok {
			continue
		}
		s := byActivity[w.ActivityType]
		if s == nil {
			s = &ScatterSeries{Name: w.ActivityType}
			byActivity[w.ActivityType] = s
		}
		s.X = append(s.X, xv)
		s.Y = append(s.Y, *w.TotalEnergyBurned)
	}
	names := make([]string, 0, len(byActivity))
	for name := range byActivity {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]ScatterSeries, 0, len(names))
	for _, name := range names {
		out = append(out, *byActivity[name])
	}
	return out
}

func summarizeTimeOfDay(t *model.Table) []BoxSummary {
	type key struct {
		cat      model.TimeCategory
		activity string
	}
	values := map[key][]float64{}
	for _, w := range t.Workouts {
		if w.ActivityType == "" || w.TotalEnergyBurned == nil || w.TimeCategory == model.CategoryNone {
			continue
		}
		k := key{w.TimeCategory, w.ActivityType}
		values[k] = append(values[k], *w.TotalEnergyBurned)
	}

	var out []BoxSummary
	for _, cat := range derive.Categories() {
		activities := make([]string, 0, len(values))
		for k := range values {
			if k.cat == cat {
				activities = append(activities, k.activity)
			}
		}
		sort.Strings(activities)
		for _, activity := range activities {
			vs := values[key{cat, activity}]
			minV, q1, med, q3, maxV := fivenum(vs)
			out = append(out, BoxSummary{
				Category: cat,
				Activity: activity,
				Count:    len(vs),
				Min:      minV,
				Q1:       q1,
				Median:   med,
				Q3:       q3,
				Max:      maxV,
			})
		}
	}
	return out
}

// fivenum computes min, lower quartile, median, upper quartile, and max
// with linear interpolation between order statistics.
func fivenum(values []float64) (minV, q1, median, q3, maxV float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return sorted[0], quantile(sorted, 0.25), quantile(sorted, 0.5), quantile(sorted, 0.75), sorted[len(sorted)-1]
}

func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
