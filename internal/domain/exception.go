package domain

import (
	"time"

	"github.com/samber/mo"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Exception is a date-level unavailability of a professional (day off, vacation, appointment outside work).
// With both bounds absent the whole day is blocked.
type Exception struct {
	ID             int64
	ProfessionalID int64
	Date           time.Time
	StartTime      mo.Option[types.TimeString]
	EndTime        mo.Option[types.TimeString]
	Reason         *string
}

// IsFullDay returns true if the exception blocks the whole date
func (e *Exception) IsFullDay() bool {
	return e.StartTime.IsAbsent() && e.EndTime.IsAbsent()
}

// Bounds returns the blocked range in minutes of day.
// A missing bound is open-ended to the start or end of the day.
func (e *Exception) Bounds() (start, end int) {
	start = 0
	end = types.MinutesPerDay
	if v, ok := e.StartTime.Get(); ok {
		start = v.Minutes()
	}
	if v, ok := e.EndTime.Get(); ok {
		end = v.Minutes()
	}
	return start, end
}
