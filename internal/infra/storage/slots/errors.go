package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots.repository: slot not found")

	// ErrLegacyShape возвращается для строки, у которой нет канонических полей (нужна миграция)
	ErrLegacyShape = errors.New("slots.repository: slot is stored in legacy shape")

	// ErrSlotFull возвращается, когда в слоте не осталось мест
	ErrSlotFull = errors.New("slots.repository: slot is full")

	// ErrSlotDisabled возвращается, когда слот отключен администратором
	ErrSlotDisabled = errors.New("slots.repository: slot is disabled")

	// ErrNothingToRelease возвращается, когда в слоте нет бронирований для отмены
	ErrNothingToRelease = errors.New("slots.repository: nothing to release")

	// ErrConcurrentUpdate возвращается, когда условное обновление не применилось, но слот уже доступен
	ErrConcurrentUpdate = errors.New("slots.repository: slot changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slots.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slots.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slots.repository: failed to scan row")
)
