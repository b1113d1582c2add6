package domain

import (
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusCompleted   BookingStatus = "completed"
	StatusNoShow      BookingStatus = "no_show"
	StatusRescheduled BookingStatus = "rescheduled"
)

// Booking is an existing appointment of a professional.
// StartsAt is stored in UTC; the booking repository converts it to local
// minutes of the computed date and fills StartMinute.
type Booking struct {
	ID                 int64
	ProfessionalID     int64
	ServiceID          int64
	StartsAt           time.Time
	DurationMinutes    int
	PreparationMinutes int
	PostServiceMinutes int
	Status             BookingStatus

	// StartMinute минуты от локальной полуночи рассчитываемой даты (может быть < 0 или > 1440)
	StartMinute int
}

// Blocks returns true if the booking occupies the professional's time
func (b *Booking) Blocks() bool {
	for _, s := range BlockingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// EndMinute returns the end of the service itself, without post-service buffer
func (b *Booking) EndMinute() int {
	return b.StartMinute + b.DurationMinutes
}
