package domain

import "time"

// BookingPolicy holds slot generation rules.
// Supports hierarchical configuration:
// 1. Service of a specific professional (professional_id, service_id)
// 2. Professional-wide (professional_id, NULL)
// 3. Service-wide (NULL, service_id)
// 4. Company-wide (NULL, NULL)
type BookingPolicy struct {
	ID                      int64
	ProfessionalID          *int64 // NULL = policy for all professionals
	ServiceID               *int64 // NULL = policy for all services
	SlotStepMinutes         int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultBookingPolicy is used when the tenant has no policy rows at all
func DefaultBookingPolicy() *BookingPolicy {
	return &BookingPolicy{
		SlotStepMinutes:         DefaultSlotStepMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

// IsGlobal returns true if this is the company-wide policy
func (p *BookingPolicy) IsGlobal() bool {
	return p.ProfessionalID == nil && p.ServiceID == nil
}

// IsProfessionalSpecific returns true if this policy is for all services of one professional
func (p *BookingPolicy) IsProfessionalSpecific() bool {
	return p.ProfessionalID != nil && p.ServiceID == nil
}

// IsServiceSpecific returns true if this policy is for one service of any professional
func (p *BookingPolicy) IsServiceSpecific() bool {
	return p.ProfessionalID == nil && p.ServiceID != nil
}

// IsProfessionalService returns true if this policy is for one service of one professional
func (p *BookingPolicy) IsProfessionalService() bool {
	return p.ProfessionalID != nil && p.ServiceID != nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}
