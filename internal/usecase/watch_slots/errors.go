package watch_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("watch_slots: invalid input data")

	// ErrUnavailable возвращается, когда лента изменений недоступна
	ErrUnavailable = errors.New("watch_slots: change feed is unavailable")
)
