package get_professional_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	policyRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/policy"
	professionalRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/professional"
	serviceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/service"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// UseCase use case получения свободных слотов одного специалиста на дату
type UseCase struct {
	professionalRepo ProfessionalRepository
	serviceRepo      ServiceRepository
	companyProvider  CompanyProvider
	policyRepo       PolicyRepository
	calculator       AvailabilityCalculator
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	professionalRepo ProfessionalRepository,
	serviceRepo ServiceRepository,
	companyProvider CompanyProvider,
	policyRepo PolicyRepository,
	calculator AvailabilityCalculator,
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
	}
}

// Execute выполняет use case получения расписания специалиста
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetProfessionalAvailability: professional=%d, service=%d, date=%s",
		req.ProfessionalID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetProfessionalAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем специалиста
	professional, err := uc.professionalRepo.GetByID(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("GetProfessionalAvailability: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("GetProfessionalAvailability: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if !professional.IsActive {
		uc.logger.Warn("GetProfessionalAvailability: professional id=%d is inactive", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetProfessionalAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetProfessionalAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetProfessionalAvailability: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Проверяем, что специалист оказывает услугу
	offering := professional.Offering(req.ServiceID)
	if offering == nil {
		uc.logger.Warn("GetProfessionalAvailability: professional id=%d does not offer service id=%d",
			req.ProfessionalID, req.ServiceID)
		return nil, ErrProfessionalServiceNotFound
	}

	// 5. Зона компании: все вычисления идут в локальном времени
	company, err := uc.companyProvider.GetCompany(ctx)
	if err != nil {
		uc.logger.Error("GetProfessionalAvailability: failed to get company: %v", err)
		return nil, fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
	}
	loc, err := company.Location()
	if err != nil {
		uc.logger.Error("GetProfessionalAvailability: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(loc)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)

	// 6. Получаем политику с учетом иерархии
	policy, err := uc.policyRepo.GetPolicyWithHierarchy(ctx, ptr.Ptr(req.ProfessionalID), ptr.Ptr(req.ServiceID))
	if err != nil && !errors.Is(err, policyRepo.ErrPolicyNotFound) {
		uc.logger.Error("GetProfessionalAvailability: failed to get policy: %v", err)
		return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
	}
	if policy == nil {
		policy = domain.DefaultBookingPolicy()
		uc.logger.Info("GetProfessionalAvailability: using default policy for professional=%d, service=%d",
			req.ProfessionalID, req.ServiceID)
	}

	// 7. Валидация даты с учетом политики
	if err := validateDate(date, now, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetProfessionalAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 8. Считаем слоты
	duration := offering.EffectiveDuration(service)
	slots, err := uc.calculator.Calculate(ctx, availability.Params{
		Professional:    professional,
		Service:         service,
		CompanyID:       company.ID,
		Policy:          policy,
		DurationMinutes: duration,
		Date:            date,
		Now:             now,
	})
	if err != nil {
		uc.logger.Error("GetProfessionalAvailability: failed to calculate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetProfessionalAvailability: %d slots for professional=%d, service=%d, date=%s",
		len(slots), req.ProfessionalID, req.ServiceID, date.Format(domain.DateFormat))

	return &Response{
		Date:            date,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		Timezone:        company.Timezone,
		DurationMinutes: duration,
		Price:           offering.EffectivePrice(service),
		Slots:           toSlots(slots, date),
	}, nil
}

// toSlots добавляет к локальному времени слота момент начала в UTC
func toSlots(slots []domain.AvailableSlot, date time.Time) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			Start:           s.Start,
			End:             s.End,
			StartsAt:        atLocalMinute(date, s.Start.Minutes()),
			DurationMinutes: s.DurationMinutes,
		}
	}
	return result
}

// atLocalMinute момент в UTC для локальной минуты даты
func atLocalMinute(date time.Time, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, minute, 0, 0, date.Location()).UTC()
}
