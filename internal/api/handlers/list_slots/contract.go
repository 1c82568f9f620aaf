package list_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

type SlotsService interface {
	GetSlots(ctx context.Context, day *domain.DayLabel) (*models.SlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
