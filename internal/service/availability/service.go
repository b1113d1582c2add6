package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/interval"
)

// Params входные данные расчета доступности одного специалиста
type Params struct {
	Professional *domain.Professional
	Service      *domain.Service
	CompanyID    int64
	Policy       *domain.BookingPolicy

	// DurationMinutes эффективная длительность с учетом переопределения специалиста
	DurationMinutes int

	// Date полночь рассчитываемой даты, Now текущее время; оба в зоне компании
	Date time.Time
	Now  time.Time
}

// Service вычисляет свободные слоты специалиста на дату
type Service struct {
	resolver    *Resolver
	bookingRepo BookingRepository
	txManager   TxManager
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	resolver *Resolver,
	bookingRepo BookingRepository,
	txManager TxManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		resolver:    resolver,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Calculate прогоняет специалиста через конвейер: окна расписания, кандидаты, занятость, минимальное время до записи.
// Все чтения выполняются в одной read-only транзакции.
func (s *Service) Calculate(ctx context.Context, p Params) ([]domain.AvailableSlot, error) {
	if p.Professional == nil || p.Service == nil || p.Policy == nil || p.Date.IsZero() {
		return nil, ErrInvalidParams
	}

	var (
		windows  []interval.Interval
		bookings []*domain.Booking
	)

	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		owner := OwnerFor(p.Professional, p.CompanyID)
		windows, err = s.resolver.ResolveDayWindows(ctx, owner, p.Professional.ID, p.Date)
		if err != nil {
			return err
		}
		if len(windows) == 0 {
			return nil
		}

		bookings, err = s.bookingRepo.GetByProfessionalAndDate(ctx, p.Professional.ID, p.Date, p.Date.Location(), domain.BlockingStatuses)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings of professional=%d: %v", ErrInternal, p.Professional.ID, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Calculate: professional=%d, date=%s: %v", p.Professional.ID, p.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	candidates := GenerateSlots(windows, p.DurationMinutes, p.Service.PreparationMinutes, p.Service.PostServiceMinutes, p.Policy.SlotStepMinutes)
	slots := FilterAvailable(candidates, bookings)
	slots = FilterByNotice(slots, p.Date, p.Now, p.Policy.MinBookingNoticeMinutes)

	s.metrics.ObserveAvailability(len(slots))
	s.logger.Info("Calculate: professional=%d, service=%d, date=%s: windows=%d, candidates=%d, bookings=%d, slots=%d",
		p.Professional.ID, p.Service.ID, p.Date.Format(domain.DateFormat), len(windows), len(candidates), len(bookings), len(slots))

	return slots, nil
}
