package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий недельных расписаний специалистов и компании
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeeklySchedule получает все дни недельного расписания владельца.
// Пустой результат не ошибка: у владельца просто нет рабочих дней.
func (r *Repository) GetWeeklySchedule(ctx context.Context, ownerID int64, ownerType domain.ScheduleOwnerType) ([]domain.WeeklyScheduleEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"owner_type",
		"day_of_week",
		"open_time",
		"close_time",
		"is_open",
		"has_break",
		"break_start_time",
		"break_end_time",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"owner_id": ownerID, "owner_type": string(ownerType)}).
		OrderBy("day_of_week").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.WeeklyScheduleEntry, 0, 7)
	for rows.Next() {
		var e domain.WeeklyScheduleEntry
		if err := rows.Scan(
			&e.ID,
			&e.OwnerID,
			&e.OwnerType,
			&e.DayOfWeek,
			&e.OpenTime,
			&e.CloseTime,
			&e.IsOpen,
			&e.HasBreak,
			&e.BreakStartTime,
			&e.BreakEndTime,
		); err != nil {
			return nil, fmt.Errorf("%w: GetWeeklySchedule - scan entry: %v", ErrScanRow, err)
		}
		// день вне 1..7 не совпадет ни с одной датой
		if !e.DayOfWeek.IsValid() {
			continue
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeeklySchedule - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
