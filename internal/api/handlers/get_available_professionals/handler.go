package get_available_professionals

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableProfessionals "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_professionals"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast       = "дата не может быть в прошлом"
	msgDateTooFar       = "дата слишком далеко в будущем"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableProfessionalsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableProfessionalsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/professionals
// Query params: service_id (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceIDStr := query.Get("service_id")
	if serviceIDStr == "" {
		h.logger.Warn("GET /availability/professionals - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("GET /availability/professionals - Invalid service ID: %q", serviceIDStr)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/professionals - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/professionals - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableProfessionals.ErrServiceNotFound):
			h.logger.Warn("GET /availability/professionals - Service not found: service_id=%d", serviceID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, getAvailableProfessionals.ErrInvalidDate):
			h.logger.Warn("GET /availability/professionals - Date in the past: service_id=%d, date=%s", serviceID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableProfessionals.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability/professionals - Date too far: service_id=%d, date=%s", serviceID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableProfessionals.ErrInvalidInput):
			h.logger.Warn("GET /availability/professionals - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /availability/professionals - Failed to get professionals: service_id=%d, date=%s, error=%v",
				serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability/professionals - Professionals retrieved: service_id=%d, date=%s, count=%d",
		serviceID, dateStr, len(result.Professionals))
	handlers.RespondJSON(w, http.StatusOK, response)
}
