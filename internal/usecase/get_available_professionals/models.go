package get_available_professionals

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса специалистов со свободным временем
type Request struct {
	ServiceID int64
	Date      time.Time // Календарная дата (время и зона игнорируются)
}

// Response модель ответа
type Response struct {
	Date          time.Time // Полночь даты в зоне компании
	ServiceID     int64
	Timezone      string
	Professionals []ProfessionalAvailability
}

// ProfessionalAvailability специалист, у которого есть хотя бы один свободный слот
type ProfessionalAvailability struct {
	ProfessionalID  int64
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	SlotsCount      int
	SlotsPreview    []Slot // Первые слоты дня
}

// Slot свободный слот
type Slot struct {
	Start    types.TimeString
	End      types.TimeString
	StartsAt time.Time // Момент начала в UTC
}
