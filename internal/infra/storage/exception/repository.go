package exception

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/samber/mo"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Repository репозиторий исключений из расписания специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория исключений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessionalAndDate получает все исключения специалиста на календарную дату
func (r *Repository) GetByProfessionalAndDate(ctx context.Context, professionalID int64, date time.Time) ([]domain.Exception, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "professional_id", "date", "start_time", "end_time", "reason").
		From("schedule_exceptions").
		Where(squirrel.Eq{
			"professional_id": professionalID,
			// дата передается строкой, чтобы зона соединения не сдвинула день
			"date": date.Format(domain.DateFormat),
		}).
		OrderBy("start_time NULLS FIRST", "id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]domain.Exception, 0)
	for rows.Next() {
		var e domain.Exception
		var start, end types.TimeString

		if err := rows.Scan(&e.ID, &e.ProfessionalID, &e.Date, &start, &end, &e.Reason); err != nil {
			return nil, fmt.Errorf("%w: GetByProfessionalAndDate - scan exception: %v", ErrScanRow, err)
		}

		e.StartTime = optionalTime(start)
		e.EndTime = optionalTime(end)
		exceptions = append(exceptions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndDate - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}

func optionalTime(t types.TimeString) mo.Option[types.TimeString] {
	if t.IsZero() {
		return mo.None[types.TimeString]()
	}
	return mo.Some(t)
}
