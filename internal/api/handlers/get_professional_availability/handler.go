package get_professional_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getProfessionalAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_professional_availability"
)

const (
	msgMissingProfessionalID = "ID специалиста обязателен"
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgMissingServiceID      = "ID услуги обязателен"
	msgInvalidServiceID      = "некорректный ID услуги"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast            = "дата не может быть в прошлом"
	msgDateTooFar            = "дата слишком далеко в будущем"
	msgProfessionalNotFound  = "специалист не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgServiceNotOffered     = "специалист не оказывает эту услугу"
	msgInvalidInput          = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetProfessionalAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetProfessionalAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/professional-schedule
// Query params: professional_id, service_id, date (YYYY-MM-DD), все обязательные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ParseQuery(r.URL.Query().Get)
	if err != nil {
		h.logger.Warn("GET /availability/professional-schedule - Invalid query: %v", err)
		handlers.RespondBadRequest(w, QueryErrorMessage(err))
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status, msg := MapError(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("GET /availability/professional-schedule - Failed to get availability: professional_id=%d, service_id=%d, error=%v",
				useCaseReq.ProfessionalID, useCaseReq.ServiceID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("GET /availability/professional-schedule - %v: professional_id=%d, service_id=%d",
			err, useCaseReq.ProfessionalID, useCaseReq.ServiceID)
		handlers.RespondError(w, status, msg)
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability/professional-schedule - Slots retrieved: professional_id=%d, service_id=%d, slots_count=%d",
		useCaseReq.ProfessionalID, useCaseReq.ServiceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

// MapError сопоставляет ошибку use case HTTP статусу и сообщению.
// 404 только когда специалист не оказывает услугу, остальные известные ошибки дают 400.
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, getProfessionalAvailability.ErrProfessionalServiceNotFound):
		return http.StatusNotFound, msgServiceNotOffered
	case errors.Is(err, getProfessionalAvailability.ErrProfessionalNotFound):
		return http.StatusBadRequest, msgProfessionalNotFound
	case errors.Is(err, getProfessionalAvailability.ErrServiceNotFound):
		return http.StatusBadRequest, msgServiceNotFound
	case errors.Is(err, getProfessionalAvailability.ErrInvalidDate):
		return http.StatusBadRequest, msgDateInPast
	case errors.Is(err, getProfessionalAvailability.ErrDateTooFarInFuture):
		return http.StatusBadRequest, msgDateTooFar
	case errors.Is(err, getProfessionalAvailability.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInput
	default:
		return http.StatusInternalServerError, ""
	}
}
