package company

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Repository источник данных компании (база тенанта)
type Repository interface {
	GetCompany(ctx context.Context) (*domain.Company, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}
