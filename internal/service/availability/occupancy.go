package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/interval"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BookingInterval интервал, который бронирование занимает вместе со своими буферами
func BookingInterval(b *domain.Booking) interval.Interval {
	return interval.New(
		b.StartMinute-max(b.PreparationMinutes, 0),
		b.EndMinute()+max(b.PostServiceMinutes, 0),
	)
}

// FilterAvailable оставляет кандидатов, не пересекающихся ни с одним блокирующим бронированием.
// Пересечение строгое: слот, начинающийся ровно в конце бронирования, свободен.
func FilterAvailable(candidates []CandidateSlot, bookings []*domain.Booking) []domain.AvailableSlot {
	occupied := make([]interval.Interval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.Blocks() {
			continue
		}
		occupied = append(occupied, BookingInterval(b))
	}
	occupied = interval.Union(occupied)

	result := make([]domain.AvailableSlot, 0, len(candidates))
	for _, c := range candidates {
		if overlapsAny(c.Padded, occupied) {
			continue
		}
		result = append(result, domain.AvailableSlot{
			Start:           types.FromMinutes(c.Bookable.Start),
			End:             types.FromMinutes(c.Bookable.End),
			DurationMinutes: c.Bookable.Len(),
		})
	}
	return result
}

// FilterByNotice убирает слоты сегодняшнего дня, до начала которых осталось меньше noticeMinutes.
// date и now должны быть в зоне компании.
func FilterByNotice(slots []domain.AvailableSlot, date, now time.Time, noticeMinutes int) []domain.AvailableSlot {
	if !sameDate(date, now) {
		return slots
	}

	minStart := now.Hour()*60 + now.Minute() + max(noticeMinutes, 0)
	if now.Second() > 0 || now.Nanosecond() > 0 {
		// слот, начинающийся в текущую минуту, уже начался
		minStart++
	}

	result := make([]domain.AvailableSlot, 0, len(slots))
	for _, s := range slots {
		if s.Start.Minutes() >= minStart {
			result = append(result, s)
		}
	}
	return result
}

func overlapsAny(i interval.Interval, set []interval.Interval) bool {
	for _, o := range set {
		if i.Overlaps(o) {
			return true
		}
	}
	return false
}
