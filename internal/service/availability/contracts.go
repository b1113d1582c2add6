package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetWeeklySchedule(ctx context.Context, ownerID int64, ownerType domain.ScheduleOwnerType) ([]domain.WeeklyScheduleEntry, error)
}

// ExceptionRepository интерфейс репозитория исключений из расписания
type ExceptionRepository interface {
	GetByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) ([]domain.Exception, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByProfessionalAndDate возвращает бронирования специалиста, пересекающие локальную дату,
	// с заполненным StartMinute относительно полуночи этой даты
	GetByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time, loc *time.Location, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// TxManager выполняет чтения в одном снимке данных
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics метрики расчета доступности
type Metrics interface {
	ObserveAvailability(slots int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
