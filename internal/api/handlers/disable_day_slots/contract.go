package disable_day_slots

import (
	"context"

	disableDaySlots "github.com/m04kA/SMC-SlotInventory/internal/usecase/disable_day_slots"
)

type DisableDaySlotsUseCase interface {
	Execute(ctx context.Context, req *disableDaySlots.Request) (*disableDaySlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
