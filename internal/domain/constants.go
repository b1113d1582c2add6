package domain

// Default policy values
const (
	DefaultSlotStepMinutes         = 30
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses statuses of bookings that occupy the professional's time.
// Cancelled, completed, no-show and rescheduled bookings free the slot.
var BlockingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
