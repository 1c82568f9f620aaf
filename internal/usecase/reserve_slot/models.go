package reserve_slot

import "github.com/m04kA/SMC-SlotInventory/internal/domain"

// Request модель запроса на бронирование места или его отмену
type Request struct {
	DayLabel string
	Category string
	Time     string
}

// Response модель ответа с состоянием слота после операции
type Response struct {
	Slot *domain.Slot
}
