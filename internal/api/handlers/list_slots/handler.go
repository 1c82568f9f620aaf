package list_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	slotsService "github.com/m04kA/SMC-SlotInventory/internal/service/slots"
)

const (
	msgInvalidDay = "некорректная метка дня, ожидается Today, Tomorrow или Day After Tomorrow"
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

// Handle GET /api/v1/slots
// Query params: day (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var day *domain.DayLabel

	if raw := r.URL.Query().Get("day"); raw != "" {
		parsed, err := domain.ParseDayLabel(raw)
		if err != nil {
			h.logger.Warn("GET /slots - Invalid day label: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDay)
			return
		}
		day = &parsed
	}

	result, err := h.service.GetSlots(r.Context(), day)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDay)
		default:
			h.logger.Error("GET /slots - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
