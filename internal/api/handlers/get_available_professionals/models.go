package get_available_professionals

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableProfessionals "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_professionals"
)

// AvailableProfessionalsResponse HTTP response model
type AvailableProfessionalsResponse struct {
	Date          string                     `json:"date"`
	ServiceID     int64                      `json:"serviceId"`
	Timezone      string                     `json:"timezone"`
	Professionals []ProfessionalAvailability `json:"professionals"`
}

// ProfessionalAvailability специалист со свободным временем
type ProfessionalAvailability struct {
	Professional    Professional    `json:"professional"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
	SlotsCount      int             `json:"slotsCount"`
	SlotsPreview    []Slot          `json:"slotsPreview"`
}

type Professional struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Slot модель свободного слота
type Slot struct {
	Start    string    `json:"start"`
	End      string    `json:"end"`
	StartsAt time.Time `json:"startsAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableProfessionals.Response) *AvailableProfessionalsResponse {
	professionals := make([]ProfessionalAvailability, len(resp.Professionals))
	for i, p := range resp.Professionals {
		preview := make([]Slot, len(p.SlotsPreview))
		for j, s := range p.SlotsPreview {
			preview[j] = Slot{
				Start:    s.Start.String(),
				End:      s.End.String(),
				StartsAt: s.StartsAt,
			}
		}

		professionals[i] = ProfessionalAvailability{
			Professional:    Professional{ID: p.ProfessionalID, Name: p.Name},
			DurationMinutes: p.DurationMinutes,
			Price:           p.Price,
			SlotsCount:      p.SlotsCount,
			SlotsPreview:    preview,
		}
	}

	return &AvailableProfessionalsResponse{
		Date:          resp.Date.Format(domain.DateFormat),
		ServiceID:     resp.ServiceID,
		Timezone:      resp.Timezone,
		Professionals: professionals,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(serviceID int64, dateStr string) (*getAvailableProfessionals.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableProfessionals.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
