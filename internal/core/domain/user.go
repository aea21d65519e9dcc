package domain

import "time"

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// FacultyStatus is the live presence indicator faculty members expose.
type FacultyStatus string

const (
	FacultyFree        FacultyStatus = "free"
	FacultyBusy        FacultyStatus = "busy"
	FacultyInClass     FacultyStatus = "in-class"
	FacultyUnavailable FacultyStatus = "unavailable"
)

// AvailabilityMode is where a user is reachable for sessions.
type AvailabilityMode string

const (
	ModeOnline   AvailabilityMode = "online"
	ModeOnCampus AvailabilityMode = "on-campus"
)

// Weekdays enumerates the valid values for DayAvailability.Day.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// IsWeekday reports whether day is one of the seven valid weekday values.
func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// TimeSlot is a clock-time interval within one day, in 24-hour HH:MM.
type TimeSlot struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// DayAvailability is one weekday's set of free time slots on a faculty profile.
type DayAvailability struct {
	Day       string     `json:"day" bson:"day"`
	TimeSlots []TimeSlot `json:"time_slots" bson:"time_slots"`
}

// User models a registered member of the exchange. SkillsOffered and
// SkillsSeeking hold skill id references, never embedded skill documents,
// and contain no duplicates.
type User struct {
	ID            string   `json:"id" bson:"_id,omitempty"`
	Name          string   `json:"name" bson:"name"`
	Email         string   `json:"email" bson:"email"`
	PasswordHash  string   `json:"-" bson:"password_hash"`
	Role          string   `json:"role" bson:"role"`
	SkillsOffered []string `json:"skills_offered" bson:"skills_offered"`
	SkillsSeeking []string `json:"skills_seeking" bson:"skills_seeking"`

	IsAvailable bool             `json:"is_available" bson:"is_available"`
	Mode        AvailabilityMode `json:"mode,omitempty" bson:"mode,omitempty"`
	Location    string           `json:"location,omitempty" bson:"location,omitempty"`

	// Faculty-only fields.
	CurrentStatus      FacultyStatus     `json:"current_status,omitempty" bson:"current_status,omitempty"`
	WeeklyAvailability []DayAvailability `json:"weekly_availability,omitempty" bson:"weekly_availability,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// HasOffered reports whether the user offers the given skill.
func (u *User) HasOffered(skillID string) bool {
	return containsID(u.SkillsOffered, skillID)
}

// HasSeeking reports whether the user seeks the given skill.
func (u *User) HasSeeking(skillID string) bool {
	return containsID(u.SkillsSeeking, skillID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
