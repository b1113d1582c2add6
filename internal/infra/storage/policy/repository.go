package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий политик бронирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessionalAndService получает политику ровно для указанной пары.
// nil означает "для всех" (professional_id IS NULL / service_id IS NULL).
func (r *Repository) GetByProfessionalAndService(ctx context.Context, professionalID *int64, serviceID *int64) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"service_id",
		"slot_step_minutes",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("booking_policies").
		Where(squirrel.Eq{
			"professional_id": nullableID(professionalID),
			"service_id":      nullableID(serviceID),
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndService - build select query: %v", ErrBuildQuery, err)
	}

	var policy domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&policy.ID,
		&policy.ProfessionalID,
		&policy.ServiceID,
		&policy.SlotStepMinutes,
		&policy.AdvanceBookingDays,
		&policy.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndService - scan policy: %v", ErrScanRow, err)
	}

	policy.CreatedAt = createdAt.Time
	policy.UpdatedAt = updatedAt.Time

	return &policy, nil
}

// GetPolicyWithHierarchy получает политику с учетом иерархии приоритетов:
// 1. Политика для конкретной услуги конкретного специалиста (professionalID, serviceID)
// 2. Политика для всех услуг специалиста (professionalID, NULL)
// 3. Политика для услуги у всех специалистов (NULL, serviceID)
// 4. Глобальная политика компании (NULL, NULL)
//
// Если политика не найдена ни на одном уровне, возвращает ErrPolicyNotFound
func (r *Repository) GetPolicyWithHierarchy(ctx context.Context, professionalID *int64, serviceID *int64) (*domain.BookingPolicy, error) {
	levels := []struct {
		name           string
		professionalID *int64
		serviceID      *int64
		applicable     bool
	}{
		{"professional+service", professionalID, serviceID, professionalID != nil && serviceID != nil},
		{"professional only", professionalID, nil, professionalID != nil},
		{"service only", nil, serviceID, serviceID != nil},
		{"global", nil, nil, true},
	}

	for i, level := range levels {
		if !level.applicable {
			continue
		}
		policy, err := r.GetByProfessionalAndService(ctx, level.professionalID, level.serviceID)
		if err == nil {
			return policy, nil
		}
		if !errors.Is(err, ErrPolicyNotFound) {
			return nil, fmt.Errorf("%w: GetPolicyWithHierarchy - level %d (%s): %v", ErrExecQuery, i+1, level.name, err)
		}
	}

	return nil, ErrPolicyNotFound
}

// nullableID превращает nil-указатель в nil, чтобы squirrel построил IS NULL
func nullableID(id *int64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}
