package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user account in the Health Metrics Tracker.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           string             `bson:"role" json:"role"`
	Profile        Profile            `bson:"profile" json:"profile"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// Profile holds health-related account settings embedded in the user document.
type Profile struct {
	DateOfBirth          *time.Time `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	HeightCM             int        `bson:"height_cm,omitempty" json:"height_cm,omitempty"`
	Timezone             string     `bson:"timezone" json:"timezone"`
	NotificationsEnabled bool       `bson:"notifications_enabled" json:"notifications_enabled"`
}

// Age derives the user's age in full years from the date of birth.
// Returns 0 when no date of birth is set.
func (p Profile) Age(today time.Time) int {
	if p.DateOfBirth == nil {
		return 0
	}
	dob := *p.DateOfBirth
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Email    string             `json:"email"`
}
