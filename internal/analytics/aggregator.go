package analytics

import (
	"fmt"
	"iter"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/montanaflynn/stats"
)

// FilterRange returns the observations whose recorded date falls inside the
// half-open range [start, end). Zero bounds are open on that side, so the
// zero range passes everything through.
func FilterRange(observations []models.Observation, r models.DateRange) []models.Observation {
	if r.Start.IsZero() && r.End.IsZero() {
		return observations
	}
	filtered := make([]models.Observation, 0, len(observations))
	for _, obs := range observations {
		if r.Contains(obs.RecordedDate) {
			filtered = append(filtered, obs)
		}
	}
	return filtered
}

// SplitOutOfRange partitions observations into those satisfying the metric
// type's value bounds and those violating them. The store validates bounds
// on write, so a non-empty second slice indicates a data-integrity problem.
func SplitOutOfRange(observations []models.Observation, mt models.MetricType) (valid, invalid []models.Observation) {
	valid = make([]models.Observation, 0, len(observations))
	for _, obs := range observations {
		if mt.InRange(obs.Value) {
			valid = append(valid, obs)
		} else {
			invalid = append(invalid, obs)
		}
	}
	return valid, invalid
}

// Summarize computes descriptive statistics over an ordered slice of
// observations for one metric type. Observations violating the type's
// bounds are excluded before aggregation. Returns ErrEmptyRange when
// nothing usable remains.
func Summarize(observations []models.Observation, mt models.MetricType) (models.Summary, error) {
	valid, _ := SplitOutOfRange(observations, mt)
	if len(valid) == 0 {
		return models.Summary{}, fmt.Errorf("summarize %s: %w", mt.Name, ErrEmptyRange)
	}

	values := make([]float64, len(valid))
	for i, obs := range valid {
		values[i] = obs.Value
	}

	minVal, err := stats.Min(values)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize %s: %v", mt.Name, err)
	}
	maxVal, err := stats.Max(values)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize %s: %v", mt.Name, err)
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize %s: %v", mt.Name, err)
	}

	return models.Summary{
		Count:     len(valid),
		Min:       minVal,
		Max:       maxVal,
		Average:   mean,
		FirstDate: valid[0].RecordedDate,
		LastDate:  valid[len(valid)-1].RecordedDate,
	}, nil
}

// Trend produces a lazy, restartable moving-average series over the given
// observations. Each point carries the mean of up to window most recent
// values ending at that date, fewer at the start of the series; there is no
// look-ahead. A window of 1 yields the raw value series. Observations must
// already be ordered ascending by date.
func Trend(observations []models.Observation, window int) iter.Seq[models.TrendPoint] {
	if window < 1 {
		window = 1
	}
	return func(yield func(models.TrendPoint) bool) {
		sum := 0.0
		for i, obs := range observations {
			sum += obs.Value
			if i >= window {
				sum -= observations[i-window].Value
			}
			n := window
			if i+1 < n {
				n = i + 1
			}
			point := models.TrendPoint{
				Date:  obs.RecordedDate,
				Value: sum / float64(n),
			}
			if !yield(point) {
				return
			}
		}
	}
}
