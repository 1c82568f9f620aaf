package reconcile_legacy_slots

import (
	"context"

	reconcileLegacySlots "github.com/m04kA/SMC-SlotInventory/internal/usecase/reconcile_legacy_slots"
)

type ReconcileLegacySlotsUseCase interface {
	Execute(ctx context.Context, req *reconcileLegacySlots.Request) (*reconcileLegacySlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
