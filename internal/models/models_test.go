package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayTruncatesToCalendarDate(t *testing.T) {
	ts := time.Date(2026, time.March, 5, 17, 42, 13, 999, time.Local)
	assert.Equal(t, day(2026, time.March, 5), Day(ts))
}

func TestDateRangeContainsHalfOpen(t *testing.T) {
	r := DateRange{Start: day(2026, time.January, 2), End: day(2026, time.January, 4)}

	assert.False(t, r.Contains(day(2026, time.January, 1)))
	assert.True(t, r.Contains(day(2026, time.January, 2)))
	assert.True(t, r.Contains(day(2026, time.January, 3)))
	assert.False(t, r.Contains(day(2026, time.January, 4)))
}

func TestDateRangeOpenBounds(t *testing.T) {
	assert.True(t, DateRange{}.Contains(day(1999, time.December, 31)))

	onlyStart := DateRange{Start: day(2026, time.January, 2)}
	assert.True(t, onlyStart.Contains(day(2030, time.June, 1)))
	assert.False(t, onlyStart.Contains(day(2026, time.January, 1)))
}

func TestPeriodKindValid(t *testing.T) {
	assert.True(t, PeriodDaily.Valid())
	assert.True(t, PeriodWeekly.Valid())
	assert.True(t, PeriodMonthly.Valid())
	assert.False(t, PeriodKind("YEARLY").Valid())
	assert.False(t, PeriodKind("").Valid())
}

func TestDirectionValid(t *testing.T) {
	assert.True(t, DirectionIncrease.Valid())
	assert.True(t, DirectionDecrease.Valid())
	assert.True(t, DirectionMaintain.Valid())
	assert.False(t, Direction("HOLD").Valid())
}

func TestMetricTypeInRange(t *testing.T) {
	minV, maxV := 0.0, 24.0
	sleep := MetricType{Name: "sleep_hours", MinValue: &minV, MaxValue: &maxV}

	assert.True(t, sleep.InRange(0))
	assert.True(t, sleep.InRange(7.5))
	assert.True(t, sleep.InRange(24))
	assert.False(t, sleep.InRange(-0.5))
	assert.False(t, sleep.InRange(25))

	unbounded := MetricType{Name: "mood"}
	assert.True(t, unbounded.InRange(-1000))
}

func TestGoalExpired(t *testing.T) {
	today := day(2026, time.April, 2)

	open := Goal{}
	assert.False(t, open.Expired(today))

	past := day(2026, time.March, 31)
	assert.True(t, Goal{EndDate: &past}.Expired(today))

	// the end date itself is still a live day
	assert.False(t, Goal{EndDate: &today}.Expired(today))
}

func TestProfileAge(t *testing.T) {
	dob := day(2000, time.June, 15)
	profile := Profile{DateOfBirth: &dob}

	assert.Equal(t, 25, profile.Age(day(2026, time.June, 14)))
	assert.Equal(t, 26, profile.Age(day(2026, time.June, 15)))
	assert.Equal(t, 0, Profile{}.Age(day(2026, time.June, 15)))
}
