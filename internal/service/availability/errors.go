package availability

import "errors"

var (
	// ErrInvalidParams возвращается, когда параметры расчета неполные
	ErrInvalidParams = errors.New("invalid availability params")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
