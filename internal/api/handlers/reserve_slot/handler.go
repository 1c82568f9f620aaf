package reserve_slot

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
	reserveSlot "github.com/m04kA/SMC-SlotInventory/internal/usecase/reserve_slot"
)

const (
	msgInvalidSlot      = "некорректный ключ слота"
	msgSlotNotFound     = "слот не найден"
	msgSlotFull         = "в слоте не осталось свободных мест"
	msgSlotDisabled     = "слот отключен администратором"
	msgNothingToRelease = "в слоте нет бронирований для отмены"
	msgLegacySlot       = "слот хранится в старом формате, выполните миграцию"
	msgConcurrentUpdate = "слот изменился во время операции, повторите запрос"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{day}/{category}/{time}/reserve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /slots/reserve", h.useCase.Execute)
}

// HandleRelease POST /api/v1/slots/{day}/{category}/{time}/release
func (h *Handler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /slots/release", h.useCase.Release)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	route string,
	call func(ctx context.Context, req *reserveSlot.Request) (*reserveSlot.Response, error),
) {
	path := handlers.SlotKeyFromPath(r)

	result, err := call(r.Context(), &reserveSlot.Request{
		DayLabel: path.Day,
		Category: path.Category,
		Time:     path.Time,
	})
	if err != nil {
		switch {
		case errors.Is(err, reserveSlot.ErrInvalidInput):
			h.logger.Warn("%s - Invalid slot key: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, reserveSlot.ErrSlotNotFound):
			h.logger.Warn("%s - Slot not found: day=%q, category=%q, time=%q", route, path.Day, path.Category, path.Time)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, reserveSlot.ErrSlotFull):
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, reserveSlot.ErrSlotDisabled):
			handlers.RespondConflict(w, msgSlotDisabled)

		case errors.Is(err, reserveSlot.ErrNothingToRelease):
			handlers.RespondConflict(w, msgNothingToRelease)

		case errors.Is(err, reserveSlot.ErrLegacySlot):
			handlers.RespondConflict(w, msgLegacySlot)

		case errors.Is(err, reserveSlot.ErrConflict):
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("%s - Failed: day=%q, category=%q, time=%q, error=%v",
				route, path.Day, path.Category, path.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSlot(result.Slot))
}
