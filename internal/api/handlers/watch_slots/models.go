package watch_slots

import "github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"

// Типы сообщений websocket
const (
	FrameSnapshot = "snapshot"
	FrameError    = "error"
)

// Frame сообщение, отправляемое клиенту
type Frame struct {
	Type    string                `json:"type"`
	Data    *models.SlotsResponse `json:"data,omitempty"`
	Message string                `json:"message,omitempty"`
}
