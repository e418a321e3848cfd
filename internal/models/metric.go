package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the wire format for calendar dates. Dates carry no time of
// day; they are normalized to midnight UTC before storage or comparison.
const DateLayout = "2006-01-02"

// Day truncates a timestamp to its naive calendar date (midnight UTC).
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is a half-open interval [Start, End) over calendar dates.
// A zero bound leaves that side unbounded; the zero DateRange matches
// every observation.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	if !r.Start.IsZero() && d.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !d.Before(r.End) {
		return false
	}
	return true
}

// MetricType is admin-managed reference data describing a measurable
// quantity (steps, sleep hours, weight, ...). Created once, never mutated
// by the aggregation core.
type MetricType struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Unit        string             `bson:"unit" json:"unit"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MinValue    *float64           `bson:"min_value,omitempty" json:"min_value,omitempty"`
	MaxValue    *float64           `bson:"max_value,omitempty" json:"max_value,omitempty"`
	Precision   int                `bson:"precision" json:"precision"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// InRange reports whether a value satisfies the type's inclusive bounds.
// An unset bound does not constrain that side.
func (mt MetricType) InRange(v float64) bool {
	if mt.MinValue != nil && v < *mt.MinValue {
		return false
	}
	if mt.MaxValue != nil && v > *mt.MaxValue {
		return false
	}
	return true
}

// Observation is one recorded value for a metric type on a calendar date.
// At most one observation exists per (user, metric type, date); the unique
// index in the observation repository enforces this.
type Observation struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	MetricTypeID primitive.ObjectID `bson:"metric_type_id" json:"metric_type_id"`
	Value        float64            `bson:"value" json:"value"`
	RecordedDate time.Time          `bson:"recorded_date" json:"recorded_date"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}
