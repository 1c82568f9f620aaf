package watch_slots

import (
	"context"

	watchSlots "github.com/m04kA/SMC-SlotInventory/internal/usecase/watch_slots"
)

type WatchSlotsUseCase interface {
	Subscribe(ctx context.Context, req *watchSlots.Request) (*watchSlots.Subscription, error)
}

// Metrics счетчик активных подписок
type Metrics interface {
	SubscriptionOpened(transport string)
	SubscriptionClosed(transport string)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
