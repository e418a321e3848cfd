package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PeriodKind is the recurring window over which goal progress is measured.
type PeriodKind string

const (
	PeriodDaily   PeriodKind = "DAILY"
	PeriodWeekly  PeriodKind = "WEEKLY"
	PeriodMonthly PeriodKind = "MONTHLY"
)

// Valid reports whether the period kind is one of the enumerated values.
func (p PeriodKind) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Direction states what meeting a goal means relative to its target.
type Direction string

const (
	DirectionIncrease Direction = "INCREASE" // reach or exceed the target
	DirectionDecrease Direction = "DECREASE" // stay at or below the target
	DirectionMaintain Direction = "MAINTAIN" // stay within a band around the target
)

// Valid reports whether the direction is one of the enumerated values.
func (d Direction) Valid() bool {
	switch d {
	case DirectionIncrease, DirectionDecrease, DirectionMaintain:
		return true
	}
	return false
}

// GoalStatus is the evaluated state of a goal at a given date.
type GoalStatus string

const (
	StatusOnTrack  GoalStatus = "ON_TRACK"
	StatusMet      GoalStatus = "MET"
	StatusNotMet   GoalStatus = "NOT_MET"
	StatusExpired  GoalStatus = "EXPIRED"
	StatusInactive GoalStatus = "INACTIVE"
)

// Goal is a user's target for a metric type over a recurring period.
// Identity and target are immutable once created; deactivation is the only
// mutation the evaluation core ever observes.
type Goal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	MetricTypeID primitive.ObjectID `bson:"metric_type_id" json:"metric_type_id"`
	TargetValue  float64            `bson:"target_value" json:"target_value"`
	Period       PeriodKind         `bson:"period" json:"period"`
	Direction    Direction          `bson:"direction" json:"direction"`
	Active       bool               `bson:"active" json:"active"`
	StartDate    time.Time          `bson:"start_date" json:"start_date"`
	EndDate      *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Expired reports whether the goal's end date has passed as of today.
func (g Goal) Expired(today time.Time) bool {
	return g.EndDate != nil && g.EndDate.Before(Day(today))
}

// GoalProgress is the evaluated progress of a goal for its current period.
// It is derived on every read and never persisted.
type GoalProgress struct {
	GoalID      primitive.ObjectID `json:"goal_id"`
	MetricType  string             `json:"metric_type"`
	Unit        string             `json:"unit"`
	PeriodStart time.Time          `json:"period_start"`
	PeriodEnd   time.Time          `json:"period_end"`
	Value       float64            `json:"value"`
	Target      float64            `json:"target"`
	Direction   Direction          `json:"direction"`
	Status      GoalStatus         `json:"status"`

	// Display precision of the metric type, consumed by the HTTP layer
	// when rounding Value for presentation.
	Precision int `json:"-"`
}
