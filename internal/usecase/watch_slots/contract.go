package watch_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

// SlotsService интерфейс сервиса слотов (чтение снимка)
type SlotsService interface {
	GetSlots(ctx context.Context, day *domain.DayLabel) (*models.SlotsResponse, error)
}

// ChangeFeed интерфейс ленты изменений слотов
type ChangeFeed interface {
	Subscribe(days ...domain.DayLabel) (<-chan domain.DayLabel, func(), error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
