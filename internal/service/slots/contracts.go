package slots

import (
	"context"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	slotsRepo "github.com/m04kA/SMC-SlotInventory/internal/infra/storage/slots"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . SlotRepository

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Upsert(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	ListByDay(ctx context.Context, day domain.DayLabel) (*slotsRepo.ListResult, error)
	ToggleActive(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
	SetActive(ctx context.Context, key domain.SlotKey, active bool) (*domain.Slot, error)
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
