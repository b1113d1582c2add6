package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// ScheduleOwnerType identifies whose weekly schedule an entry belongs to
type ScheduleOwnerType string

const (
	OwnerTypeProfessional ScheduleOwnerType = "professional"
	OwnerTypeCompany      ScheduleOwnerType = "company"
)

// DayOfWeek is an ISO weekday: 1 = Monday ... 7 = Sunday
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DayOfWeekFromTime converts time.Weekday (Sunday = 0) to the ISO numbering
func DayOfWeekFromTime(t time.Time) DayOfWeek {
	if t.Weekday() == time.Sunday {
		return Sunday
	}
	return DayOfWeek(t.Weekday())
}

// IsValid returns true for 1..7
func (d DayOfWeek) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// WeeklyScheduleEntry is a recurring working window for one weekday.
// Times are local wall clock in the company timezone.
type WeeklyScheduleEntry struct {
	ID             int64
	OwnerID        int64
	OwnerType      ScheduleOwnerType
	DayOfWeek      DayOfWeek
	OpenTime       types.TimeString
	CloseTime      types.TimeString
	IsOpen         bool
	HasBreak       bool
	BreakStartTime types.TimeString
	BreakEndTime   types.TimeString
}

// ForDay returns the entry for the given weekday, or nil if the schedule has none
func ForDay(entries []WeeklyScheduleEntry, day DayOfWeek) *WeeklyScheduleEntry {
	for i := range entries {
		if entries[i].DayOfWeek == day {
			return &entries[i]
		}
	}
	return nil
}
