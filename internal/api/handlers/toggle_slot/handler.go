package toggle_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
	slotsService "github.com/m04kA/SMC-SlotInventory/internal/service/slots"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "некорректный ключ слота"
	msgSlotNotFound       = "слот не найден"
	msgLegacySlot         = "слот хранится в старом формате, выполните миграцию"
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

// Handle PATCH /api/v1/slots/{day}/{category}/{time}/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	path := handlers.SlotKeyFromPath(r)

	var body ToggleSlotRequest
	if err := handlers.DecodeOptionalJSON(r, &body); err != nil {
		h.logger.Warn("PATCH /slots/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := &models.SlotKeyRequest{DayLabel: path.Day, Category: path.Category, Time: path.Time}

	var (
		result *models.SlotResponse
		err    error
	)
	if body.Active != nil {
		result, err = h.service.SetActive(r.Context(), req, *body.Active)
	} else {
		result, err = h.service.ToggleSlot(r.Context(), req)
	}

	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/toggle - Invalid slot key: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/toggle - Slot not found: day=%q, category=%q, time=%q",
				path.Day, path.Category, path.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrLegacySlot):
			h.logger.Warn("PATCH /slots/toggle - Legacy slot: day=%q, category=%q, time=%q",
				path.Day, path.Category, path.Time)
			handlers.RespondConflict(w, msgLegacySlot)

		default:
			h.logger.Error("PATCH /slots/toggle - Failed to toggle slot: day=%q, category=%q, time=%q, error=%v",
				path.Day, path.Category, path.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/toggle - Slot updated: id=%s, active=%t", result.ID, result.Active)
	handlers.RespondJSON(w, http.StatusOK, result)
}
