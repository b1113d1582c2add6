package domain

import "github.com/m04kA/SMC-AvailabilityService/pkg/types"

// AvailableSlot represents a bookable time range: the service itself, buffers excluded
type AvailableSlot struct {
	Start           types.TimeString
	End             types.TimeString
	DurationMinutes int
}
