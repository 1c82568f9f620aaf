package add_slot

import (
	"context"

	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

type SlotsService interface {
	AddSlot(ctx context.Context, req *models.AddSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
