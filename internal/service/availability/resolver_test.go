package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/interval"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// 2025-06-10 вторник
var tuesday = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func hm(s string) int {
	return types.MustParse(s).Minutes()
}

func window(from, to string) interval.Interval {
	return interval.New(hm(from), hm(to))
}

func openEntry(day domain.DayOfWeek, open, close string) domain.WeeklyScheduleEntry {
	return domain.WeeklyScheduleEntry{
		DayOfWeek: day,
		OpenTime:  types.MustParse(open),
		CloseTime: types.MustParse(close),
		IsOpen:    true,
	}
}

func withBreak(e domain.WeeklyScheduleEntry, from, to string) domain.WeeklyScheduleEntry {
	e.HasBreak = true
	e.BreakStartTime = types.MustParse(from)
	e.BreakEndTime = types.MustParse(to)
	return e
}

func partialException(date time.Time, from, to string) domain.Exception {
	return domain.Exception{
		Date:      date,
		StartTime: mo.Some(types.MustParse(from)),
		EndTime:   mo.Some(types.MustParse(to)),
	}
}

func TestDayWindows(t *testing.T) {
	tests := []struct {
		name       string
		entries    []domain.WeeklyScheduleEntry
		exceptions []domain.Exception
		expected   []interval.Interval
	}{
		{
			name:     "no entry for weekday",
			entries:  []domain.WeeklyScheduleEntry{openEntry(domain.Monday, "09:00", "18:00")},
			expected: []interval.Interval{},
		},
		{
			name: "closed day",
			entries: []domain.WeeklyScheduleEntry{
				{DayOfWeek: domain.Tuesday, OpenTime: "09:00", CloseTime: "18:00", IsOpen: false},
			},
			expected: []interval.Interval{},
		},
		{
			name:     "open without break",
			entries:  []domain.WeeklyScheduleEntry{openEntry(domain.Tuesday, "09:00", "18:00")},
			expected: []interval.Interval{window("09:00", "18:00")},
		},
		{
			name:     "break splits the day",
			entries:  []domain.WeeklyScheduleEntry{withBreak(openEntry(domain.Tuesday, "09:00", "18:00"), "12:00", "13:00")},
			expected: []interval.Interval{window("09:00", "12:00"), window("13:00", "18:00")},
		},
		{
			name:     "break outside working hours is ignored",
			entries:  []domain.WeeklyScheduleEntry{withBreak(openEntry(domain.Tuesday, "09:00", "18:00"), "19:00", "20:00")},
			expected: []interval.Interval{window("09:00", "18:00")},
		},
		{
			name:     "break overlapping the opening trims the start",
			entries:  []domain.WeeklyScheduleEntry{withBreak(openEntry(domain.Tuesday, "09:00", "18:00"), "08:00", "10:00")},
			expected: []interval.Interval{window("10:00", "18:00")},
		},
		{
			name:     "open equals close",
			entries:  []domain.WeeklyScheduleEntry{openEntry(domain.Tuesday, "09:00", "09:00")},
			expected: []interval.Interval{},
		},
		{
			name:     "open after close",
			entries:  []domain.WeeklyScheduleEntry{openEntry(domain.Tuesday, "18:00", "09:00")},
			expected: []interval.Interval{},
		},
		{
			name:     "close at end of day",
			entries:  []domain.WeeklyScheduleEntry{openEntry(domain.Tuesday, "20:00", "24:00")},
			expected: []interval.Interval{window("20:00", "24:00")},
		},
		{
			name:       "partial exception",
			entries:    []domain.WeeklyScheduleEntry{openEntry(domain.Tuesday, "09:00", "18:00")},
			exceptions: []domain.Exception{partialException(tuesday, "14:00", "15:00")},
			expected:   []interval.Interval{window("09:00", "14:00"), window("15:00", "18:00")},
		},
		{
			name:       "full day exception",
			entries:    []domain.WeeklyScheduleEntry{withBreak(openEntry(domain.Tuesday, "09:00", "18:00"), "12:00", "13:00")},
			exceptions: []domain.Exception{partialException(tuesday, "10:00", "11:00"), {Date: tuesday}},
			expected:   []interval.Interval{},
		},
		{
			name:    "several exceptions all apply",
			entries: []domain.WeeklyScheduleEntry{openEntry(domain.Tuesday, "09:00", "18:00")},
			exceptions: []domain.Exception{
				partialException(tuesday, "16:00", "17:00"),
				partialException(tuesday, "10:00", "11:00"),
			},
			expected: []interval.Interval{window("09:00", "10:00"), window("11:00", "16:00"), window("17:00", "18:00")},
		},
		{
			name:    "exception with only start is open-ended to end of day",
			entries: []domain.WeeklyScheduleEntry{openEntry(domain.Tuesday, "09:00", "18:00")},
			exceptions: []domain.Exception{
				{Date: tuesday, StartTime: mo.Some(types.MustParse("15:00"))},
			},
			expected: []interval.Interval{window("09:00", "15:00")},
		},
		{
			name:       "exception for another date is skipped",
			entries:    []domain.WeeklyScheduleEntry{openEntry(domain.Tuesday, "09:00", "18:00")},
			exceptions: []domain.Exception{{Date: tuesday.AddDate(0, 0, 7)}},
			expected:   []interval.Interval{window("09:00", "18:00")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DayWindows(tt.entries, tt.exceptions, tuesday))
		})
	}
}

func TestOwnerFor(t *testing.T) {
	own := OwnerFor(&domain.Professional{ID: 7}, 1)
	assert.Equal(t, int64(7), own.OwnerID())
	assert.Equal(t, domain.OwnerTypeProfessional, own.OwnerType())

	company := OwnerFor(&domain.Professional{ID: 7, IsCompanySchedule: true}, 1)
	assert.Equal(t, int64(1), company.OwnerID())
	assert.Equal(t, domain.OwnerTypeCompany, company.OwnerType())
}

type stubScheduleRepo struct {
	entries   map[domain.ScheduleOwnerType][]domain.WeeklyScheduleEntry
	err       error
	lastOwner int64
}

func (s *stubScheduleRepo) GetWeeklySchedule(_ context.Context, ownerID int64, ownerType domain.ScheduleOwnerType) ([]domain.WeeklyScheduleEntry, error) {
	s.lastOwner = ownerID
	return s.entries[ownerType], s.err
}

type stubExceptionRepo struct {
	exceptions []domain.Exception
	err        error
	calls      int
}

func (s *stubExceptionRepo) GetByProfessionalAndDate(context.Context, int64, time.Time) ([]domain.Exception, error) {
	s.calls++
	return s.exceptions, s.err
}

func TestResolver_ResolveDayWindows(t *testing.T) {
	t.Run("company schedule owner", func(t *testing.T) {
		schedules := &stubScheduleRepo{entries: map[domain.ScheduleOwnerType][]domain.WeeklyScheduleEntry{
			domain.OwnerTypeCompany:      {openEntry(domain.Tuesday, "10:00", "16:00")},
			domain.OwnerTypeProfessional: {openEntry(domain.Tuesday, "09:00", "18:00")},
		}}
		exceptions := &stubExceptionRepo{exceptions: []domain.Exception{partialException(tuesday, "12:00", "13:00")}}
		r := NewResolver(schedules, exceptions)

		windows, err := r.ResolveDayWindows(context.Background(), CompanyScheduleOwner{CompanyID: 1}, 7, tuesday)

		require.NoError(t, err)
		assert.Equal(t, int64(1), schedules.lastOwner)
		assert.Equal(t, []interval.Interval{window("10:00", "12:00"), window("13:00", "16:00")}, windows)
	})

	t.Run("closed day skips exceptions lookup", func(t *testing.T) {
		schedules := &stubScheduleRepo{}
		exceptions := &stubExceptionRepo{}
		r := NewResolver(schedules, exceptions)

		windows, err := r.ResolveDayWindows(context.Background(), ProfessionalScheduleOwner{ProfessionalID: 7}, 7, tuesday)

		require.NoError(t, err)
		assert.Empty(t, windows)
		assert.Zero(t, exceptions.calls)
	})

	t.Run("schedule error", func(t *testing.T) {
		r := NewResolver(&stubScheduleRepo{err: errors.New("db down")}, &stubExceptionRepo{})

		_, err := r.ResolveDayWindows(context.Background(), ProfessionalScheduleOwner{ProfessionalID: 7}, 7, tuesday)

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("exceptions error", func(t *testing.T) {
		schedules := &stubScheduleRepo{entries: map[domain.ScheduleOwnerType][]domain.WeeklyScheduleEntry{
			domain.OwnerTypeProfessional: {openEntry(domain.Tuesday, "09:00", "18:00")},
		}}
		r := NewResolver(schedules, &stubExceptionRepo{err: errors.New("db down")})

		_, err := r.ResolveDayWindows(context.Background(), ProfessionalScheduleOwner{ProfessionalID: 7}, 7, tuesday)

		assert.ErrorIs(t, err, ErrInternal)
	})
}
