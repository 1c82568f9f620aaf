package get_capacities

import (
	"net/http"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
)

type Handler struct {
	service SlotsService
}

func NewHandler(service SlotsService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/v1/slots/capacities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Capacities())
}
