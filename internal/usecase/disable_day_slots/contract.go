package disable_day_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListKeysByDay(ctx context.Context, day domain.DayLabel) ([]domain.SlotKey, error)
	SetActive(ctx context.Context, key domain.SlotKey, active bool) (*domain.Slot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
