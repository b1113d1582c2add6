package domain

import "github.com/shopspring/decimal"

// Professional is a staff member who performs services
type Professional struct {
	ID                int64
	Name              string
	IsCompanySchedule bool // true = works by the company weekly schedule
	IsActive          bool
	Services          []ProfessionalService
}

// ProfessionalService links a professional to a service with optional overrides
type ProfessionalService struct {
	ServiceID       int64
	DurationMinutes *int
	Price           decimal.NullDecimal
}

// Offering returns the link to the service, or nil if the professional does not offer it
func (p *Professional) Offering(serviceID int64) *ProfessionalService {
	for i := range p.Services {
		if p.Services[i].ServiceID == serviceID {
			return &p.Services[i]
		}
	}
	return nil
}

// Offers returns true if the professional performs the service
func (p *Professional) Offers(serviceID int64) bool {
	return p.Offering(serviceID) != nil
}

// EffectiveDuration returns the pivot override or the service duration
func (ps *ProfessionalService) EffectiveDuration(service *Service) int {
	if ps != nil && ps.DurationMinutes != nil && *ps.DurationMinutes > 0 {
		return *ps.DurationMinutes
	}
	return service.DurationMinutes
}

// EffectivePrice returns the pivot override or the service price
func (ps *ProfessionalService) EffectivePrice(service *Service) decimal.Decimal {
	if ps != nil && ps.Price.Valid {
		return ps.Price.Decimal
	}
	return service.Price
}
