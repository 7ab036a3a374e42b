package derive

import (
	"math"
	"reflect"
	"testing"

	"github.com/verode/fitstat/internal/model"
)

func workout(activity string, mets, kcal float64) model.Workout {
	return model.Workout{
		ActivityType:      activity,
		AverageMETs:       model.Float(mets),
		TotalEnergyBurned: model.Float(kcal),
	}
}

func TestFitTrendsRecoversLine(t *testing.T) {
	// y = 50x + 10, exactly.
	table := model.NewTable([]model.Workout{
		workout("Running", 4, 210),
		workout("Running", 6, 310),
		workout("Running", 8, 410),
	})

	res := FitTrends(table)
	if len(res.Trends) != 1 || len(res.Skipped) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	tr := res.Trends[0]
	if tr.Activity != "Running" || tr.Points != 3 {
		t.Fatalf("unexpected trend: %+v", tr)
	}
	if math.Abs(tr.Slope-50) > 1e-9 || math.Abs(tr.Intercept-10) > 1e-9 {
		t.Fatalf("unexpected fit: slope=%v intercept=%v", tr.Slope, tr.Intercept)
	}
}

func TestFitTrendsSkipsThinActivities(t *testing.T) {
	table := model.NewTable([]model.Workout{
		workout("Running", 4, 210),
		workout("Running", 6, 310),
		// One usable point only: METs missing on the second row.
		workout("Walking", 3, 150),
		{ActivityType: "Walking", TotalEnergyBurned: model.Float(160)},
		// Zero variance in x.
		workout("Yoga", 2, 90),
		workout("Yoga", 2, 110),
	})

	res := FitTrends(table)
	if len(res.Trends) != 1 || res.Trends[0].Activity != "Running" {
		t.Fatalf("unexpected trends: %+v", res.Trends)
	}
	if !reflect.DeepEqual(res.Skipped, []string{"Walking", "Yoga"}) {
		t.Fatalf("unexpected skipped: %v", res.Skipped)
	}
}
