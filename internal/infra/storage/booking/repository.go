package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Repository репозиторий бронирований (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProfessionalAndDate получает бронирования специалиста, которые могут пересекать локальную дату.
// В базе время начала хранится в UTC; здесь оно переводится в зону компании и в минуты
// от локальной полуночи date (StartMinute). Бронирование предыдущего дня, заходящее за полночь,
// получает отрицательный StartMinute.
// statuses ограничивает выборку; пустой список означает все статусы.
func (r *Repository) GetByProfessionalAndDate(
	ctx context.Context,
	professionalID int64,
	date time.Time,
	loc *time.Location,
	statuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	if loc == nil {
		return nil, ErrInvalidLocation
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	y, m, d := date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	// предыдущий день целиком: бронирование не длиннее суток может зайти на date
	from := time.Date(y, m, d-1, 0, 0, 0, 0, loc)

	where := squirrel.And{
		squirrel.Eq{"professional_id": professionalID},
		squirrel.GtOrEq{"starts_at": from.UTC()},
		squirrel.Lt{"starts_at": dayEnd.UTC()},
	}
	if len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		where = append(where, squirrel.Eq{"status": values})
	}

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"service_id",
		"starts_at",
		"duration_minutes",
		"preparation_minutes",
		"post_service_minutes",
		"status",
	).
		From("bookings").
		Where(where).
		OrderBy("starts_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID,
			&b.ProfessionalID,
			&b.ServiceID,
			&b.StartsAt,
			&b.DurationMinutes,
			&b.PreparationMinutes,
			&b.PostServiceMinutes,
			&b.Status,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByProfessionalAndDate - scan booking: %v", ErrScanRow, err)
		}

		b.StartsAt = b.StartsAt.UTC()
		b.StartMinute = LocalMinute(b.StartsAt, dayStart, loc)

		// бронирование предыдущего дня, закончившееся до полуночи, на дату не влияет
		if b.EndMinute()+b.PostServiceMinutes <= 0 {
			continue
		}
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByProfessionalAndDate - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// LocalMinute переводит момент времени в минуты настенных часов зоны loc
// относительно полуночи дня dayStart
func LocalMinute(at time.Time, dayStart time.Time, loc *time.Location) int {
	local := at.In(loc)
	days := calendarDays(dayStart, local)
	return days*types.MinutesPerDay + local.Hour()*60 + local.Minute()
}

// calendarDays количество календарных дней от a до b без учета длины суток при переходе на летнее время
func calendarDays(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
