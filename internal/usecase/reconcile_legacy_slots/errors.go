package reconcile_legacy_slots

import (
	"errors"
	"fmt"
)

var (
	// ErrPartialFailure возвращается, когда часть строк не удалось мигрировать
	ErrPartialFailure = errors.New("reconcile_legacy_slots: some slots were not migrated")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reconcile_legacy_slots: internal error")
)

// PartialFailureError детали частичного отказа
type PartialFailureError struct {
	Scanned int
	Failed  []FailedSlot
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %d of %d failed", ErrPartialFailure, len(e.Failed), e.Scanned)
}

func (e *PartialFailureError) Unwrap() error {
	return ErrPartialFailure
}
