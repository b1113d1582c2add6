package export_professional_availability

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/emersion/go-ical"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_professional_availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type Handler struct {
	useCase GetProfessionalAvailabilityUseCase
	clock   Clock
	logger  Logger
}

func NewHandler(useCase GetProfessionalAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		clock:   time.Now,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/professional-schedule.ics
// Те же query параметры и коды ошибок, что у JSON версии.
// Пустой VCALENDAR не кодируется, поэтому день без свободных слотов отдается как 204.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := get_professional_availability.ParseQuery(r.URL.Query().Get)
	if err != nil {
		h.logger.Warn("GET /availability/professional-schedule.ics - Invalid query: %v", err)
		handlers.RespondBadRequest(w, get_professional_availability.QueryErrorMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status, msg := get_professional_availability.MapError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("GET /availability/professional-schedule.ics - Failed to get availability: professional_id=%d, service_id=%d, error=%v",
				useCaseReq.ProfessionalID, useCaseReq.ServiceID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("GET /availability/professional-schedule.ics - %v: professional_id=%d, service_id=%d",
			err, useCaseReq.ProfessionalID, useCaseReq.ServiceID)
		handlers.RespondError(w, status, msg)
		return
	}

	if len(result.Slots) == 0 {
		h.logger.Info("GET /availability/professional-schedule.ics - No free slots: professional_id=%d, service_id=%d",
			useCaseReq.ProfessionalID, useCaseReq.ServiceID)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(ToCalendar(result, h.clock())); err != nil {
		h.logger.Error("GET /availability/professional-schedule.ics - Failed to encode calendar: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("availability-%d-%s.ics", result.ProfessionalID, result.Date.Format(domain.DateFormat))
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	h.logger.Info("GET /availability/professional-schedule.ics - Calendar exported: professional_id=%d, service_id=%d, events=%d",
		useCaseReq.ProfessionalID, useCaseReq.ServiceID, len(result.Slots))
}
