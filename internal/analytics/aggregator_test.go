package analytics

import (
	"testing"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func obsSeries(start time.Time, values ...float64) []models.Observation {
	out := make([]models.Observation, len(values))
	for i, v := range values {
		out[i] = models.Observation{
			Value:        v,
			RecordedDate: start.AddDate(0, 0, i),
		}
	}
	return out
}

func steps() models.MetricType {
	minV, maxV := 0.0, 100000.0
	return models.MetricType{
		Name:      "steps",
		Unit:      "steps",
		MinValue:  &minV,
		MaxValue:  &maxV,
		Precision: 0,
		Active:    true,
	}
}

func TestSummarizeBasicStats(t *testing.T) {
	obs := obsSeries(date(2026, time.January, 1), 4000, 12000, 8000)

	summary, err := Summarize(obs, steps())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 4000.0, summary.Min)
	assert.Equal(t, 12000.0, summary.Max)
	assert.Equal(t, 8000.0, summary.Average)
	assert.Equal(t, date(2026, time.January, 1), summary.FirstDate)
	assert.Equal(t, date(2026, time.January, 3), summary.LastDate)
	assert.Equal(t, 24000.0, summary.Total())
}

func TestSummarizeMinAvgMaxOrdering(t *testing.T) {
	cases := [][]float64{
		{1},
		{5, 5, 5},
		{0.1, 99.9, 42.5, 7},
		{10000, 2, 300, 4000, 55555},
	}
	for _, values := range cases {
		summary, err := Summarize(obsSeries(date(2026, time.March, 1), values...), steps())
		require.NoError(t, err)
		assert.LessOrEqual(t, summary.Min, summary.Average)
		assert.LessOrEqual(t, summary.Average, summary.Max)
	}
}

func TestSummarizeEmptyRange(t *testing.T) {
	_, err := Summarize(nil, steps())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestSummarizeExcludesOutOfRangeValues(t *testing.T) {
	obs := obsSeries(date(2026, time.January, 1), 5000, -200, 7000, 150000)

	summary, err := Summarize(obs, steps())
	require.NoError(t, err)

	// the -200 and 150000 entries violate the [0, 100000] bounds
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 5000.0, summary.Min)
	assert.Equal(t, 7000.0, summary.Max)
	assert.Equal(t, 6000.0, summary.Average)
}

func TestSummarizeAllOutOfRangeIsEmpty(t *testing.T) {
	obs := obsSeries(date(2026, time.January, 1), -1, -2)
	_, err := Summarize(obs, steps())
	assert.ErrorIs(t, err, ErrEmptyRange)
}

func TestSplitOutOfRange(t *testing.T) {
	obs := obsSeries(date(2026, time.January, 1), 5000, -200, 7000)

	valid, invalid := SplitOutOfRange(obs, steps())
	assert.Len(t, valid, 2)
	require.Len(t, invalid, 1)
	assert.Equal(t, -200.0, invalid[0].Value)
}

func TestFilterRangeHalfOpen(t *testing.T) {
	// observations on 2026-01-01..2026-01-05
	obs := obsSeries(date(2026, time.January, 1), 1, 2, 3, 4, 5)

	// [2026-01-02, 2026-01-04) keeps only 01-02 and 01-03
	filtered := FilterRange(obs, models.DateRange{
		Start: date(2026, time.January, 2),
		End:   date(2026, time.January, 4),
	})
	require.Len(t, filtered, 2)
	assert.Equal(t, date(2026, time.January, 2), filtered[0].RecordedDate)
	assert.Equal(t, date(2026, time.January, 3), filtered[1].RecordedDate)
}

func TestFilterRangeOpenBounds(t *testing.T) {
	obs := obsSeries(date(2026, time.January, 1), 1, 2, 3, 4, 5)

	assert.Len(t, FilterRange(obs, models.DateRange{}), 5)

	fromThird := FilterRange(obs, models.DateRange{Start: date(2026, time.January, 3)})
	assert.Len(t, fromThird, 3)

	beforeThird := FilterRange(obs, models.DateRange{End: date(2026, time.January, 3)})
	assert.Len(t, beforeThird, 2)
}

func collectTrend(seq func(yield func(models.TrendPoint) bool)) []models.TrendPoint {
	var out []models.TrendPoint
	seq(func(p models.TrendPoint) bool {
		out = append(out, p)
		return true
	})
	return out
}

func TestTrendWindowOneIsRawSeries(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	obs := obsSeries(date(2026, time.February, 1), values...)

	points := collectTrend(Trend(obs, 1))
	require.Len(t, points, len(values))
	for i, p := range points {
		assert.Equal(t, values[i], p.Value)
		assert.Equal(t, obs[i].RecordedDate, p.Date)
	}
}

func TestTrendMovingAverage(t *testing.T) {
	obs := obsSeries(date(2026, time.February, 1), 2, 4, 6, 8)

	points := collectTrend(Trend(obs, 3))
	require.Len(t, points, 4)

	// warm-up points average over fewer values, no look-ahead
	assert.Equal(t, 2.0, points[0].Value)
	assert.Equal(t, 3.0, points[1].Value)
	assert.Equal(t, 4.0, points[2].Value)
	assert.Equal(t, 6.0, points[3].Value)
}

func TestTrendIsRestartable(t *testing.T) {
	obs := obsSeries(date(2026, time.February, 1), 1, 2, 3)
	seq := Trend(obs, 2)

	first := collectTrend(seq)
	second := collectTrend(seq)
	assert.Equal(t, first, second)
}

func TestTrendEarlyStop(t *testing.T) {
	obs := obsSeries(date(2026, time.February, 1), 1, 2, 3, 4)

	var got []models.TrendPoint
	for p := range Trend(obs, 2) {
		got = append(got, p)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestTrendEmptyInput(t *testing.T) {
	assert.Empty(t, collectTrend(Trend(nil, 7)))
}
