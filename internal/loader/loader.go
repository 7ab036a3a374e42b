// Package loader reads the workout export and normalizes it into the
// canonical table: type coercion, imputation, and calendar features.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/verode/fitstat/internal/model"
)

// Raw column names as written by the export header.
const (
	colStartDate    = "startDate"
	colEndDate      = "endDate"
	colDuration     = "duration"
	colDistance     = "totalDistance"
	colEnergy       = "totalEnergyBurned"
	colActivityType = "activityType"
	colMETs         = "HKAverageMETs"
	colTemperature  = "HKWeatherTemperature"
	colHumidity     = "HKWeatherHumidity"
)

// Columns returns the raw column names in export order, for diagnostics
// rendering.
func Columns() []string {
	return []string{
		colStartDate,
		colEndDate,
		colDuration,
		colDistance,
		colEnergy,
		colActivityType,
		colMETs,
		colTemperature,
		colHumidity,
	}
}

// ParseError reports a malformed export file. A missing file is not a
// ParseError; it surfaces as the os.Open error and satisfies
// errors.Is(err, fs.ErrNotExist).
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Diagnostics summarizes load-time data quality. It is informational
// only; nothing downstream branches on it.
type Diagnostics struct {
	Rows int
	// Missing counts raw empty fields per column, before imputation.
	Missing map[string]int
	// StartDateFailures counts startDate values that were present but did
	// not parse.
	StartDateFailures int
	// SuffixDefects counts non-empty unit-carrying values that lacked
	// their expected suffix, per column.
	SuffixDefects map[string]int
	// CoercionFailures counts non-empty values that failed type coercion,
	// per column. startDate has its own counter and is not repeated here.
	CoercionFailures map[string]int
}

// Load reads the export at path and produces the canonical table together
// with its diagnostics. The export is Latin-1 encoded; high bytes are
// decoded rather than rejected. Field-level coercion failures degrade the
// field to nil and never fail the load.
func Load(path string) (*model.Table, Diagnostics, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Diagnostics{}, fmt.Errorf("open export: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(transform.NewReader(file, charmap.ISO8859_1.NewDecoder()))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, Diagnostics{}, &ParseError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, Diagnostics{}, &ParseError{Path: path, Err: errors.New("missing header row")}
	}

	index, err := mapHeader(rows[0])
	if err != nil {
		return nil, Diagnostics{}, &ParseError{Path: path, Err: err}
	}

	diag := Diagnostics{
		Missing:          map[string]int{},
		SuffixDefects:    map[string]int{},
		CoercionFailures: map[string]int{},
	}

	workouts := make([]model.Workout, 0, len(rows)-1)
	// Distance and temperature stay optional until imputation.
	distances := make([]*float64, 0, len(rows)-1)
	temps := make([]*float64, 0, len(rows)-1)

	for _, row := range rows[1:] {
		field := func(name string) string {
			i := index[name]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}
		missing := func(name, value string) bool {
			if value == "" {
				diag.Missing[name]++
				return true
			}
			return false
		}

		var w model.Workout

		if s := field(colStartDate); !missing(colStartDate, s) {
			if ts, ok := coerceTime(s); ok {
				w.StartDate = model.Time(ts)
			} else {
				diag.StartDateFailures++
			}
		}
		if s := field(colEndDate); !missing(colEndDate, s) {
			if ts, ok := coerceTime(s); ok {
				w.EndDate = model.Time(ts)
			} else {
				diag.CoercionFailures[colEndDate]++
			}
		}
		if s := field(colDuration); !missing(colDuration, s) {
			if v, ok := coerceFloat(s); ok {
				w.DurationSec = model.Float(v)
			} else {
				diag.CoercionFailures[colDuration]++
			}
		}

		var dist *float64
		if s := field(colDistance); !missing(colDistance, s) {
			if v, ok := coerceFloat(s); ok {
				dist = model.Float(v)
			} else {
				diag.CoercionFailures[colDistance]++
			}
		}
		distances = append(distances, dist)

		if s := field(colEnergy); !missing(colEnergy, s) {
			if v, ok := coerceUnitFloat(s, suffixKcal); ok {
				w.TotalEnergyBurned = model.Float(v)
			} else if !hasUnitSuffix(s, suffixKcal) {
				diag.SuffixDefects[colEnergy]++
			} else {
				diag.CoercionFailures[colEnergy]++
			}
		}

		if s := field(colActivityType); !missing(colActivityType, s) {
			w.ActivityType = s
		}

		if s := field(colMETs); !missing(colMETs, s) {
			if v, ok := coerceFloat(s); ok {
				w.AverageMETs = model.Float(v)
			} else {
				diag.CoercionFailures[colMETs]++
			}
		}

		var temp *float64
		if s := field(colTemperature); !missing(colTemperature, s) {
			if v, ok := coerceUnitFloat(s, suffixDegF); ok {
				temp = model.Float(v)
			} else if !hasUnitSuffix(s, suffixDegF) {
				diag.SuffixDefects[colTemperature]++
			} else {
				diag.CoercionFailures[colTemperature]++
			}
		}
		temps = append(temps, temp)

		if s := field(colHumidity); !missing(colHumidity, s) {
			if v, ok := coerceFloat(s); ok {
				w.WeatherHumidity = model.Float(v)
			} else {
				diag.CoercionFailures[colHumidity]++
			}
		}

		if w.StartDate != nil {
			hour := w.StartDate.Hour()
			month := int(w.StartDate.Month())
			day := (int(w.StartDate.Weekday()) + 6) % 7 // Monday = 0
			w.Hour = model.Int(hour)
			w.Month = model.Int(month)
			w.DayOfWeek = model.Int(day)
		}

		workouts = append(workouts, w)
	}

	imputeDistance(workouts, distances)
	imputeTemperature(workouts, temps)

	diag.Rows = len(workouts)

	t := model.NewTable(workouts)
	t.Mark(model.ColHour, model.ColMonth, model.ColDayOfWeek)
	return t, diag, nil
}

func mapHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range Columns() {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}
	return index, nil
}

// imputeDistance fills missing distances with zero.
func imputeDistance(workouts []model.Workout, distances []*float64) {
	for i := range workouts {
		if distances[i] != nil {
			workouts[i].TotalDistance = *distances[i]
		}
	}
}

// imputeTemperature fills missing temperatures with the column mean,
// computed once over the non-missing values.
func imputeTemperature(workouts []model.Workout, temps []*float64) {
	var sum float64
	var n int
	for _, t := range temps {
		if t != nil {
			sum += *t
			n++
		}
	}
	mean := 0.0
	if n > 0 {
		mean = sum / float64(n)
	}
	for i := range workouts {
		if temps[i] != nil {
			workouts[i].WeatherTemp = *temps[i]
		} else {
			workouts[i].WeatherTemp = mean
		}
	}
}
