package reconcile_legacy_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListAllRaw(ctx context.Context) ([]*domain.LegacySlot, error)
	Backfill(ctx context.Context, plan *domain.BackfillPlan) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
