package availability

import "github.com/m04kA/SMC-AvailabilityService/pkg/interval"

// CandidateSlot слот-кандидат до проверки занятости
type CandidateSlot struct {
	Padded   interval.Interval // услуга вместе с буферами подготовки и уборки
	Bookable interval.Interval // сама услуга, которую видит клиент
}

// GenerateSlots раскладывает слоты с шагом step внутри каждого окна.
// Длина слота с буферами P = before + duration + after; в окне длины L
// получается floor((L-P)/step)+1 слотов при L >= P.
// Некорректная длительность или шаг дают пустой результат.
func GenerateSlots(windows []interval.Interval, durationMinutes, bufferBefore, bufferAfter, stepMinutes int) []CandidateSlot {
	if durationMinutes <= 0 || stepMinutes <= 0 {
		return []CandidateSlot{}
	}
	bufferBefore = max(bufferBefore, 0)
	bufferAfter = max(bufferAfter, 0)
	padded := bufferBefore + durationMinutes + bufferAfter

	result := make([]CandidateSlot, 0)
	for _, w := range interval.Normalize(windows) {
		for start := w.Start; start+padded <= w.End; start += stepMinutes {
			result = append(result, CandidateSlot{
				Padded:   interval.New(start, start+padded),
				Bookable: interval.New(start+bufferBefore, start+bufferBefore+durationMinutes),
			})
		}
	}
	return result
}
