package get_professional_availability

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса расписания специалиста
type Request struct {
	ProfessionalID int64
	ServiceID      int64
	Date           time.Time // Календарная дата (время и зона игнорируются)
}

// Response модель ответа со свободными слотами
type Response struct {
	Date           time.Time // Полночь даты в зоне компании
	ProfessionalID int64
	ServiceID      int64
	Timezone       string // IANA зона компании

	// Эффективные длительность и цена услуги у специалиста
	DurationMinutes int
	Price           decimal.Decimal

	Slots []Slot
}

// Slot свободный слот
type Slot struct {
	Start           types.TimeString // Локальное время начала услуги
	End             types.TimeString // Локальное время окончания услуги
	StartsAt        time.Time        // Момент начала в UTC
	DurationMinutes int
}
