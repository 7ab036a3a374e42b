package derive

import (
	"sort"

	"github.com/verode/fitstat/internal/model"
)

// MonthlyCounts is a dense month-by-activity cross-tabulation of workout
// counts. Every activity appears for every month present in the data;
// combinations that never co-occur hold zero rather than being omitted,
// so stacked-bar consumers never see a sparse category.
type MonthlyCounts struct {
	Months     []int    // ascending, months observed in the data
	Activities []string // sorted
	Counts     [][]int  // Counts[i][j]: workouts in Months[i] of Activities[j]
}

// CountMonthly builds the monthly cross-tab. Rows without a month are
// excluded; rows without an activity type are excluded from every
// per-activity aggregation rather than forming their own category.
func CountMonthly(t *model.Table) MonthlyCounts {
	monthSet := map[int]struct{}{}
	activitySet := map[string]struct{}{}
	type key struct {
		month    int
		activity string
	}
	counts := map[key]int{}

	for _, w := range t.Workouts {
		if w.Month == nil || w.ActivityType == "" {
			continue
		}
		monthSet[*w.Month] = struct{}{}
		activitySet[w.ActivityType] = struct{}{}
		counts[key{*w.Month, w.ActivityType}]++
	}

	out := MonthlyCounts{
		Months:     make([]int, 0, len(monthSet)),
		Activities: make([]string, 0, len(activitySet)),
	}
	for m := range monthSet {
		out.Months = append(out.Months, m)
	}
	for a := range activitySet {
		out.Activities = append(out.Activities, a)
	}
	sort.Ints(out.Months)
	sort.Strings(out.Activities)

	out.Counts = make([][]int, len(out.Months))
	for i, m := range out.Months {
		row := make([]int, len(out.Activities))
		for j, a := range out.Activities {
			row[j] = counts[key{m, a}]
		}
		out.Counts[i] = row
	}
	return out
}
