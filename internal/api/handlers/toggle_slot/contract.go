package toggle_slot

import (
	"context"

	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

type SlotsService interface {
	ToggleSlot(ctx context.Context, req *models.SlotKeyRequest) (*models.SlotResponse, error)
	SetActive(ctx context.Context, req *models.SlotKeyRequest, active bool) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
