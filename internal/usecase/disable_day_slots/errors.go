package disable_day_slots

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("disable_day_slots: invalid input data")

	// ErrConfirmationRequired возвращается, если массовое отключение не подтверждено
	ErrConfirmationRequired = errors.New("disable_day_slots: confirmation required")

	// ErrPartialFailure возвращается, когда часть слотов не удалось отключить
	ErrPartialFailure = errors.New("disable_day_slots: some slots were not disabled")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("disable_day_slots: internal error")
)

// PartialFailureError детали частичного отказа
// Уже отключенные слоты не откатываются
type PartialFailureError struct {
	Total  int
	Failed []FailedSlot
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %d of %d failed", ErrPartialFailure, len(e.Failed), e.Total)
}

func (e *PartialFailureError) Unwrap() error {
	return ErrPartialFailure
}
