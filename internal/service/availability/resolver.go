package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/interval"
)

// ScheduleOwner владелец недельного расписания, по которому работает специалист
type ScheduleOwner interface {
	OwnerID() int64
	OwnerType() domain.ScheduleOwnerType
}

// ProfessionalScheduleOwner специалист с собственным расписанием
type ProfessionalScheduleOwner struct {
	ProfessionalID int64
}

func (o ProfessionalScheduleOwner) OwnerID() int64 { return o.ProfessionalID }

func (o ProfessionalScheduleOwner) OwnerType() domain.ScheduleOwnerType {
	return domain.OwnerTypeProfessional
}

// CompanyScheduleOwner специалист работает по расписанию компании
type CompanyScheduleOwner struct {
	CompanyID int64
}

func (o CompanyScheduleOwner) OwnerID() int64 { return o.CompanyID }

func (o CompanyScheduleOwner) OwnerType() domain.ScheduleOwnerType {
	return domain.OwnerTypeCompany
}

// OwnerFor выбирает владельца расписания по флагу специалиста
func OwnerFor(professional *domain.Professional, companyID int64) ScheduleOwner {
	if professional.IsCompanySchedule {
		return CompanyScheduleOwner{CompanyID: companyID}
	}
	return ProfessionalScheduleOwner{ProfessionalID: professional.ID}
}

// Resolver вычисляет рабочие окна специалиста на дату
type Resolver struct {
	scheduleRepo  ScheduleRepository
	exceptionRepo ExceptionRepository
}

// NewResolver создает новый резолвер расписания
func NewResolver(scheduleRepo ScheduleRepository, exceptionRepo ExceptionRepository) *Resolver {
	return &Resolver{
		scheduleRepo:  scheduleRepo,
		exceptionRepo: exceptionRepo,
	}
}

// ResolveDayWindows возвращает отсортированные рабочие окна специалиста на дату.
// Закрытый день или отсутствие расписания дает пустой результат, а не ошибку.
func (r *Resolver) ResolveDayWindows(ctx context.Context, owner ScheduleOwner, professionalID int64, date time.Time) ([]interval.Interval, error) {
	entries, err := r.scheduleRepo.GetWeeklySchedule(ctx, owner.OwnerID(), owner.OwnerType())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get weekly schedule of %s=%d: %v",
			ErrInternal, owner.OwnerType(), owner.OwnerID(), err)
	}

	windows := EntryWindows(domain.ForDay(entries, domain.DayOfWeekFromTime(date)))
	if len(windows) == 0 {
		return windows, nil
	}

	exceptions, err := r.exceptionRepo.GetByProfessionalAndDate(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get exceptions of professional=%d: %v", ErrInternal, professionalID, err)
	}

	return ApplyExceptions(windows, exceptions, date), nil
}

// DayWindows вычисляет рабочие окна на дату по недельному расписанию и исключениям
func DayWindows(entries []domain.WeeklyScheduleEntry, exceptions []domain.Exception, date time.Time) []interval.Interval {
	windows := EntryWindows(domain.ForDay(entries, domain.DayOfWeekFromTime(date)))
	return ApplyExceptions(windows, exceptions, date)
}

// EntryWindows возвращает окна одного дня недели: [open, close) за вычетом перерыва
func EntryWindows(entry *domain.WeeklyScheduleEntry) []interval.Interval {
	if entry == nil || !entry.IsOpen {
		return []interval.Interval{}
	}

	open := interval.New(entry.OpenTime.Minutes(), entry.CloseTime.Minutes())
	if open.IsEmpty() {
		return []interval.Interval{}
	}

	windows := []interval.Interval{open}
	if entry.HasBreak {
		// перерыв вне рабочего времени просто ничего не вычитает
		windows = interval.SubtractAll(windows, interval.New(entry.BreakStartTime.Minutes(), entry.BreakEndTime.Minutes()))
	}
	return interval.Normalize(windows)
}

// ApplyExceptions вычитает из окон все исключения на дату
func ApplyExceptions(windows []interval.Interval, exceptions []domain.Exception, date time.Time) []interval.Interval {
	for i := range exceptions {
		e := &exceptions[i]
		if !e.Date.IsZero() && !sameDate(e.Date, date) {
			continue
		}
		if e.IsFullDay() {
			return []interval.Interval{}
		}
		start, end := e.Bounds()
		windows = interval.SubtractAll(windows, interval.New(start, end))
	}
	return interval.Normalize(windows)
}

// sameDate сравнивает календарные даты без учета зоны
func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
