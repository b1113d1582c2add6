package get_available_professionals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// UseCase use case поиска специалистов, у которых есть свободное время на услугу в дату
type UseCase struct {
	professionalRepo ProfessionalRepository
	serviceRepo      ServiceRepository
	companyProvider  CompanyProvider
	policyRepo       PolicyRepository
	calculator       AvailabilityCalculator
	timeProvider     TimeProvider
	logger           Logger
	previewSlots     int
}

// NewUseCase создает новый экземпляр use case.
// previewSlots сколько ближайших слотов отдавать для каждого специалиста.
func NewUseCase(
	professionalRepo ProfessionalRepository,
	serviceRepo ServiceRepository,
	companyProvider CompanyProvider,
	policyRepo PolicyRepository,
	calculator AvailabilityCalculator,
	previewSlots int,
	logger Logger,
) *UseCase {
	return &UseCase{
		professionalRepo: professionalRepo,
		serviceRepo:      serviceRepo,
		companyProvider:  companyProvider,
		policyRepo:       policyRepo,
		calculator:       calculator,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		previewSlots:     previewSlots,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableProfessionals: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableProfessionals: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableProfessionals: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableProfessionals: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableProfessionals: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Зона компании
	company, err := uc.companyProvider.GetCompany(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableProfessionals: failed to get company: %v", err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	loc, err := company.Location()
	if err != nil {
		uc.logger.Error("GetAvailableProfessionals: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(loc)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	// 4. Дата не в прошлом и в пределах окна записи на уровне услуги
	if isDateInPast(date, now) {
		uc.logger.Warn("GetAvailableProfessionals: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}
	servicePolicy, err := uc.getPolicy(ctx, nil, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if isBeyondAdvanceWindow(date, now, servicePolicy.AdvanceBookingDays) {
		uc.logger.Warn("GetAvailableProfessionals: date %s beyond %d days", date.Format(domain.DateFormat), servicePolicy.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, servicePolicy.AdvanceBookingDays)
	}

	// 5. Специалисты, оказывающие услугу
	professionals, err := uc.professionalRepo.ListByService(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableProfessionals: failed to list professionals: %v", err)
		return nil, fmt.Errorf("%w: failed to list professionals: %v", ErrInternal, err)
	}

	// 6. Прогоняем каждого через расчет. Ошибка одного специалиста не ломает выдачу остальных.
	result := make([]ProfessionalAvailability, 0, len(professionals))
	failed := 0
	for _, professional := range professionals {
		item, err := uc.professionalAvailability(ctx, professional, service, company.ID, date, now)
		if err != nil {
			failed++
			uc.logger.Error("GetAvailableProfessionals: professional=%d skipped: %v", professional.ID, err)
			continue
		}
		if item != nil {
			result = append(result, *item)
		}
	}

	if len(professionals) > 0 && failed == len(professionals) {
		return nil, fmt.Errorf("%w: availability failed for all %d professionals", ErrInternal, failed)
	}

	uc.logger.Info("GetAvailableProfessionals: %d of %d professionals available for service=%d, date=%s",
		len(result), len(professionals), req.ServiceID, date.Format(domain.DateFormat))

	return &Response{
		Date:          date,
		ServiceID:     req.ServiceID,
		Timezone:      company.Timezone,
		Professionals: result,
	}, nil
}

// professionalAvailability считает слоты одного специалиста; nil без ошибки означает "нет свободного времени"
func (uc *UseCase) professionalAvailability(
	ctx context.Context,
	professional *domain.Professional,
	service *domain.Service,
	companyID int64,
	date, now time.Time,
) (*ProfessionalAvailability, error) {
	offering := professional.Offering(service.ID)
	if offering == nil {
		return nil, nil
	}

	policy, err := uc.getPolicy(ctx, ptr.Ptr(professional.ID), service.ID)
	if err != nil {
		return nil, err
	}
	if isBeyondAdvanceWindow(date, now, policy.AdvanceBookingDays) {
		return nil, nil
	}

	duration := offering.EffectiveDuration(service)
	slots, err := uc.calculator.Calculate(ctx, availability.Params{
		Professional:    professional,
		Service:         service,
		CompanyID:       companyID,
		Policy:          policy,
		DurationMinutes: duration,
		Date:            date,
		Now:             now,
	})
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, nil
	}

	preview := slots[:min(uc.previewSlots, len(slots))]
	previewSlots := make([]Slot, len(preview))
	for i, s := range preview {
		previewSlots[i] = Slot{
			Start:    s.Start,
			End:      s.End,
			StartsAt: time.Date(date.Year(), date.Month(), date.Day(), 0, s.Start.Minutes(), 0, 0, date.Location()).UTC(),
		}
	}

	return &ProfessionalAvailability{
		ProfessionalID:  professional.ID,
		Name:            professional.Name,
		DurationMinutes: duration,
		Price:           offering.EffectivePrice(service),
		SlotsCount:      len(slots),
		SlotsPreview:    previewSlots,
	}, nil
}

// getPolicy получает политику по иерархии, при отсутствии возвращает значения по умолчанию
func (uc *UseCase) getPolicy(ctx context.Context, professionalID *int64, serviceID int64) (*domain.BookingPolicy, error) {
	policy, err := uc.policyRepo.GetPolicyWithHierarchy(ctx, professionalID, ptr.Ptr(serviceID))
	if errors.Is(err, policyRepo.ErrPolicyNotFound) {
		return domain.DefaultBookingPolicy(), nil
	}
	if err != nil {
		uc.logger.Error("GetAvailableProfessionals: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	return policy, nil
}
