package icloudems

import "time"

// Weekdays holds the weekday abbreviations the portal uses, in table
// order. Any row whose first cell is not one of these is rejected.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func validWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Slot is the structured description of a course offering extracted
// from one free-text table cell. All six fields together form its
// natural key.
type Slot struct {
	CourseName string
	CourseType string
	CourseCode string
	Section    int64
	Room       string
	Block      string
}

// SlotFlags are markers extracted from the slot text but not persisted.
type SlotFlags struct {
	Practical bool
	Project   bool
}

// Entry is one row of the weekly schedule. StartTime/EndTime are nil
// when the corresponding side of the time range is blank on the portal.
type Entry struct {
	Date        time.Time
	Weekday     string
	StartTime   *time.Time
	EndTime     *time.Time
	FacultyName string
	Slot        Slot
	Class       string
}

// ReplacementEntry is an ad-hoc substitution row. Its date comes from
// its own date cell rather than the header range.
type ReplacementEntry struct {
	Entry
	AlternateFacultyName string
}

// WeeklySchedule always carries all 7 weekday keys, even for days with
// no entries.
type WeeklySchedule map[string][]Entry

// ReplacementSchedule is pre-seeded with all 7 weekday keys and only
// populates days actually observed in the replacement table.
type ReplacementSchedule map[string][]ReplacementEntry

// TimetablePage is the result of extracting one timetable report page.
type TimetablePage struct {
	Class        string
	Week         WeeklySchedule
	Replacements ReplacementSchedule
}
