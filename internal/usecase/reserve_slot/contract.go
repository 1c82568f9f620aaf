package reserve_slot

import (
	"context"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
// Reserve и Release должны быть атомарными условными обновлениями
type SlotRepository interface {
	Reserve(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
	Release(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
}

// Metrics счетчики операций со слотами
type Metrics interface {
	ObserveSlotOperation(operation string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
