package get_available_professionals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

// ProfessionalRepository интерфейс репозитория специалистов
type ProfessionalRepository interface {
	// ListByService получает активных специалистов, оказывающих услугу
	ListByService(ctx context.Context, serviceID int64) ([]*domain.Professional, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// CompanyProvider источник данных компании тенанта (репозиторий или кэш)
type CompanyProvider interface {
	GetCompany(ctx context.Context) (*domain.Company, error)
}

// PolicyRepository интерфейс репозитория политик бронирования
type PolicyRepository interface {
	GetPolicyWithHierarchy(ctx context.Context, professionalID *int64, serviceID *int64) (*domain.BookingPolicy, error)
}

// AvailabilityCalculator расчет свободных слотов специалиста
type AvailabilityCalculator interface {
	Calculate(ctx context.Context, p availability.Params) ([]domain.AvailableSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
