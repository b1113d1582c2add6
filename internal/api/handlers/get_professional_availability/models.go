package get_professional_availability

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getProfessionalAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_professional_availability"
)

var (
	errMissingProfessionalID = errors.New("professional_id is required")
	errInvalidProfessionalID = errors.New("professional_id must be a positive integer")
	errMissingServiceID      = errors.New("service_id is required")
	errInvalidServiceID      = errors.New("service_id must be a positive integer")
	errMissingDate           = errors.New("date is required")
	errInvalidDate           = errors.New("date must be YYYY-MM-DD")
)

// ProfessionalAvailabilityResponse HTTP response model
type ProfessionalAvailabilityResponse struct {
	Date            string          `json:"date"`
	ProfessionalID  int64           `json:"professionalId"`
	ServiceID       int64           `json:"serviceId"`
	Timezone        string          `json:"timezone"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
	Slots           []Slot          `json:"slots"`
}

// Slot модель свободного слота
type Slot struct {
	Start           string    `json:"start"`
	End             string    `json:"end"`
	StartsAt        time.Time `json:"startsAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getProfessionalAvailability.Response) *ProfessionalAvailabilityResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = Slot{
			Start:           s.Start.String(),
			End:             s.End.String(),
			StartsAt:        s.StartsAt,
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &ProfessionalAvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ProfessionalID:  resp.ProfessionalID,
		ServiceID:       resp.ServiceID,
		Timezone:        resp.Timezone,
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
		Slots:           slots,
	}
}

// ParseQuery создает запрос use case из query параметров professional_id, service_id, date.
// Используется также экспортом в iCalendar.
func ParseQuery(get func(key string) string) (*getProfessionalAvailability.Request, error) {
	professionalID, err := parseID(get("professional_id"), errMissingProfessionalID, errInvalidProfessionalID)
	if err != nil {
		return nil, err
	}

	serviceID, err := parseID(get("service_id"), errMissingServiceID, errInvalidServiceID)
	if err != nil {
		return nil, err
	}

	dateStr := get("date")
	if dateStr == "" {
		return nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, errInvalidDate
	}

	return &getProfessionalAvailability.Request{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		Date:           date,
	}, nil
}

func parseID(raw string, errMissing, errInvalid error) (int64, error) {
	if raw == "" {
		return 0, errMissing
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalid
	}
	return id, nil
}

// QueryErrorMessage переводит ошибку разбора query параметров в сообщение для клиента
func QueryErrorMessage(err error) string {
	switch {
	case errors.Is(err, errMissingProfessionalID):
		return msgMissingProfessionalID
	case errors.Is(err, errInvalidProfessionalID):
		return msgInvalidProfessionalID
	case errors.Is(err, errMissingServiceID):
		return msgMissingServiceID
	case errors.Is(err, errInvalidServiceID):
		return msgInvalidServiceID
	case errors.Is(err, errMissingDate):
		return msgMissingDate
	default:
		return msgInvalidDate
	}
}
