package models

import "time"

// DateLayout is the canonical calendar-date representation used when matching
// substitutions and completion records against a day.
const DateLayout = "2006-01-02"

// DateKey normalises a point in time to its calendar-date form.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Substitution is a date-scoped teacher override for one timetable slot.
// Records are never mutated; when several exist for the same slot and
// date the earliest created one takes effect.
type Substitution struct {
	ID                string    `db:"id" json:"id"`
	Date              time.Time `db:"sub_date" json:"date"`
	ScheduleItemID    string    `db:"schedule_item_id" json:"schedule_item_id"`
	SubstituteTeacher string    `db:"substitute_teacher" json:"substitute_teacher"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
