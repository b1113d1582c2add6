// Package interval реализует арифметику полуоткрытых интервалов [Start, End)
// в минутах относительно локальной полуночи рассчитываемой даты.
// Значения могут выходить за пределы [0, 1440): бронирование предыдущего дня,
// закончившееся после полуночи, начинается с отрицательной минуты.
package interval

import (
	"fmt"
	"sort"
)

// Interval полуоткрытый интервал [Start, End) в минутах
type Interval struct {
	Start int
	End   int
}

// New создает интервал [start, end)
func New(start, end int) Interval {
	return Interval{Start: start, End: end}
}

// Len возвращает длину интервала в минутах (0 для пустого)
func (i Interval) Len() int {
	if i.End <= i.Start {
		return 0
	}
	return i.End - i.Start
}

// IsEmpty возвращает true для интервала нулевой или отрицательной длины
func (i Interval) IsEmpty() bool {
	return i.End <= i.Start
}

// Overlaps проверяет пересечение со строгими неравенствами.
// Интервалы, которые только касаются границами, не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	if i.IsEmpty() || other.IsEmpty() {
		return false
	}
	return i.Start < other.End && other.Start < i.End
}

// Contains проверяет, что other целиком лежит внутри i
func (i Interval) Contains(other Interval) bool {
	return i.Start <= other.Start && other.End <= i.End
}

// Intersect возвращает пересечение двух интервалов
func (i Interval) Intersect(other Interval) (Interval, bool) {
	result := Interval{Start: max(i.Start, other.Start), End: min(i.End, other.End)}
	if result.IsEmpty() {
		return Interval{}, false
	}
	return result, true
}

// Subtract вычитает other из i. Результат содержит от нуля до двух непустых интервалов.
func (i Interval) Subtract(other Interval) []Interval {
	if i.IsEmpty() {
		return nil
	}
	if !i.Overlaps(other) {
		return []Interval{i}
	}

	result := make([]Interval, 0, 2)
	if left := (Interval{Start: i.Start, End: other.Start}); !left.IsEmpty() {
		result = append(result, left)
	}
	if right := (Interval{Start: other.End, End: i.End}); !right.IsEmpty() {
		result = append(result, right)
	}
	return result
}

// String возвращает представление вида [540,720)
func (i Interval) String() string {
	return fmt.Sprintf("[%d,%d)", i.Start, i.End)
}

// SubtractAll вычитает other из каждого интервала набора
func SubtractAll(set []Interval, other Interval) []Interval {
	result := make([]Interval, 0, len(set)+1)
	for _, i := range set {
		result = append(result, i.Subtract(other)...)
	}
	return result
}

// Union объединяет пересекающиеся и смежные интервалы, результат отсортирован
func Union(set []Interval) []Interval {
	sorted := Normalize(set)
	if len(sorted) == 0 {
		return sorted
	}

	result := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, i := range sorted[1:] {
		if i.Start <= current.End {
			current.End = max(current.End, i.End)
			continue
		}
		result = append(result, current)
		current = i
	}
	return append(result, current)
}

// Normalize отбрасывает пустые интервалы и сортирует по началу (затем по концу)
func Normalize(set []Interval) []Interval {
	result := make([]Interval, 0, len(set))
	for _, i := range set {
		if !i.IsEmpty() {
			result = append(result, i)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		if result[a].Start != result[b].Start {
			return result[a].Start < result[b].Start
		}
		return result[a].End < result[b].End
	})
	return result
}
