package add_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
	slotsService "github.com/m04kA/SMC-SlotInventory/internal/service/slots"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "укажите категорию, день и время слота"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid slot: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)
		default:
			h.logger.Error("POST /slots - Failed to add slot: category=%q, day=%q, time=%q, error=%v",
				req.Category, req.DayLabel, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot saved: id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
