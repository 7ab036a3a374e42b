package derive

import (
	"math"
	"sort"

	"github.com/verode/fitstat/internal/model"
)

// Trend is a first-degree least-squares line of energy burned against
// average METs for one activity type.
type Trend struct {
	Activity  string
	Slope     float64
	Intercept float64
	Points    int
}

// TrendResult carries the fitted lines plus the activities that could not
// be fitted. Skipping is per activity and never fatal.
type TrendResult struct {
	Trends  []Trend
	Skipped []string
}

// FitTrends fits one line per activity type, using only rows where both
// METs and energy are present. An activity with fewer than two valid
// points, or with zero variance in METs, is skipped and reported.
func FitTrends(t *model.Table) TrendResult {
	type points struct {
		xs, ys []float64
	}
	byActivity := map[string]*points{}
	for _, w := range t.Workouts {
		if w.ActivityType == "" || w.AverageMETs == nil || w.TotalEnergyBurned == nil {
			continue
		}
		p := byActivity[w.ActivityType]
		if p == nil {
			p = &points{}
			byActivity[w.ActivityType] = p
		}
		p.xs = append(p.xs, *w.AverageMETs)
		p.ys = append(p.ys, *w.TotalEnergyBurned)
	}

	activities := make([]string, 0, len(byActivity))
	for a := range byActivity {
		activities = append(activities, a)
	}
	sort.Strings(activities)

	var out TrendResult
	for _, a := range activities {
		p := byActivity[a]
		slope, intercept, ok := leastSquares(p.xs, p.ys)
		if !ok {
			out.Skipped = append(out.Skipped, a)
			continue
		}
		out.Trends = append(out.Trends, Trend{
			Activity:  a,
			Slope:     slope,
			Intercept: intercept,
			Points:    len(p.xs),
		})
	}
	return out
}

func leastSquares(xs, ys []float64) (slope, intercept float64, ok bool) {
	n := float64(len(xs))
	if len(xs) < 2 {
		return 0, 0, false
	}
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	den := n*sumXX - sumX*sumX
	if math.Abs(den) < 1e-12 {
		return 0, 0, false
	}
	slope = (n*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / n
	return slope, intercept, true
}
