package disable_day_slots

import "github.com/m04kA/SMC-SlotInventory/internal/domain"

// Request модель запроса на отключение всех слотов дня
type Request struct {
	DayLabel  string // Метка дня
	Confirmed bool   // Явное подтверждение администратора
}

// FailedSlot слот, который не удалось отключить
type FailedSlot struct {
	Key domain.SlotKey
	Err error
}

// Response модель ответа
type Response struct {
	Day      domain.DayLabel
	Total    int          // Всего слотов за день
	Disabled int          // Успешно отключено
	Failed   []FailedSlot // Ошибки по отдельным слотам
}
