package professional

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

// Repository репозиторий специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает специалиста вместе со списком оказываемых услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "is_company_schedule", "is_active").
		From("professionals").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var professional domain.Professional
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&professional.ID,
		&professional.Name,
		&professional.IsCompanySchedule,
		&professional.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan professional: %v", ErrScanRow, err)
	}

	services, err := r.getServices(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	professional.Services = services

	return &professional, nil
}

// ListByService получает активных специалистов, оказывающих услугу.
// У каждого в Services только связь с этой услугой.
func (r *Repository) ListByService(ctx context.Context, serviceID int64) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"p.id",
		"p.name",
		"p.is_company_schedule",
		"p.is_active",
		"ps.service_id",
		"ps.duration_minutes",
		"ps.price",
	).
		From("professionals p").
		Join("professional_service ps ON ps.professional_id = p.id").
		Where(squirrel.Eq{"ps.service_id": serviceID, "p.is_active": true}).
		OrderBy("p.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		var p domain.Professional
		var ps domain.ProfessionalService

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.IsCompanySchedule,
			&p.IsActive,
			&ps.ServiceID,
			&ps.DurationMinutes,
			&ps.Price,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByService - scan professional: %v", ErrScanRow, err)
		}

		p.Services = []domain.ProfessionalService{ps}
		professionals = append(professionals, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByService - rows error: %v", ErrScanRow, err)
	}

	return professionals, nil
}

// getServices получает связи специалиста с услугами и переопределения длительности и цены
func (r *Repository) getServices(ctx context.Context, executor DBExecutor, professionalID int64) ([]domain.ProfessionalService, error) {
	query, args, err := psqlbuilder.Select("service_id", "duration_minutes", "price").
		From("professional_service").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("service_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.ProfessionalService, 0)
	for rows.Next() {
		var ps domain.ProfessionalService
		if err := rows.Scan(&ps.ServiceID, &ps.DurationMinutes, &ps.Price); err != nil {
			return nil, fmt.Errorf("%w: getServices - scan professional service: %v", ErrScanRow, err)
		}
		services = append(services, ps)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}
