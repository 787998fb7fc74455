package models

import "time"

// Weekday name vocabulary used by ScheduleSession.Day.
const (
	DayMonday    = "MONDAY"
	DayTuesday   = "TUESDAY"
	DayWednesday = "WEDNESDAY"
	DayThursday  = "THURSDAY"
	DayFriday    = "FRIDAY"
	DaySaturday  = "SATURDAY"
	DaySunday    = "SUNDAY"
)

// ScheduleSession represents one recurring slot in the canonical weekly timetable.
type ScheduleSession struct {
	ID        string    `db:"id" json:"id"`
	Day       string    `db:"day_of_week" json:"day"`
	Period    int       `db:"period" json:"period"`
	ClassRoom string    `db:"class_room" json:"class_room"`
	Subject   string    `db:"subject" json:"subject"`
	Teacher   string    `db:"teacher_name" json:"teacher"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleFilter describes query params for listing the canonical timetable.
type ScheduleFilter struct {
	Day       string
	ClassRoom string
	Teacher   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// EffectiveSession is a ScheduleSession with the substitution overlay applied.
// Derived, never persisted.
type EffectiveSession struct {
	ScheduleSession
	IsSubstituted   bool   `json:"is_substituted"`
	OriginalTeacher string `json:"original_teacher,omitempty"`
}
