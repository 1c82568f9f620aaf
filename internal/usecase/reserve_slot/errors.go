package reserve_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_slot: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reserve_slot: slot not found")

	// ErrSlotFull возвращается, когда все места слота заняты
	ErrSlotFull = errors.New("reserve_slot: slot is full")

	// ErrSlotDisabled возвращается, когда слот отключен администратором
	ErrSlotDisabled = errors.New("reserve_slot: slot is disabled")

	// ErrNothingToRelease возвращается, когда в слоте нет бронирований
	ErrNothingToRelease = errors.New("reserve_slot: slot has no bookings to release")

	// ErrLegacySlot возвращается, когда слот хранится в старом формате
	ErrLegacySlot = errors.New("reserve_slot: slot must be reconciled first")

	// ErrConflict возвращается, когда слот изменился во время операции
	ErrConflict = errors.New("reserve_slot: slot changed concurrently, retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_slot: internal error")
)
