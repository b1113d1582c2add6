package export_professional_availability

import (
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	getProfessionalAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_professional_availability"
)

const (
	productID = "-//SMC//Availability Service//RU"

	// propWRTimezone расширение, которое понимают Google Calendar и Outlook
	propWRTimezone = "X-WR-TIMEZONE"
)

// ToCalendar строит VCALENDAR, в котором каждый свободный слот это отдельный VEVENT
func ToCalendar(resp *getProfessionalAvailability.Response, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, productID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropName, fmt.Sprintf("Свободное время специалиста %d", resp.ProfessionalID))
	if resp.Timezone != "" {
		cal.Props.SetText(propWRTimezone, resp.Timezone)
	}

	for _, slot := range resp.Slots {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, uuid.New().String())
		event.Props.SetText(ical.PropSummary, fmt.Sprintf("Свободно: %s-%s", slot.Start, slot.End))
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDateTime(ical.PropDateTimeStart, slot.StartsAt.UTC())
		event.Props.SetDateTime(ical.PropDateTimeEnd, slot.StartsAt.Add(time.Duration(slot.DurationMinutes)*time.Minute).UTC())
		cal.Children = append(cal.Children, event.Component)
	}

	return cal
}
