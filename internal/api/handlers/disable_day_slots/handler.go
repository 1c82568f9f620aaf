package disable_day_slots

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
	disableDaySlots "github.com/m04kA/SMC-SlotInventory/internal/usecase/disable_day_slots"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDay           = "некорректная метка дня"
	msgConfirmationRequired = "подтвердите отключение: передайте confirm=true и confirmDayLabel с тем же днем"
	msgPartialFailure       = "часть слотов не удалось отключить (%d из %d), уже отключенные слоты остаются отключенными"
)

type Handler struct {
	useCase DisableDaySlotsUseCase
	logger  Logger
}

func NewHandler(useCase DisableDaySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{day}/disable-all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day := mux.Vars(r)[handlers.VarDay]

	var req DisableDaySlotsRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{day}/disable-all - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(day))
	if err != nil {
		switch {
		case errors.Is(err, disableDaySlots.ErrConfirmationRequired):
			h.logger.Warn("POST /slots/{day}/disable-all - Not confirmed: day=%q", day)
			handlers.RespondError(w, http.StatusPreconditionFailed, msgConfirmationRequired)

		case errors.Is(err, disableDaySlots.ErrInvalidInput):
			h.logger.Warn("POST /slots/{day}/disable-all - Invalid day: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, disableDaySlots.ErrPartialFailure) && result != nil:
			h.logger.Error("POST /slots/{day}/disable-all - Partial failure: day=%q, failed=%d, total=%d",
				day, len(result.Failed), result.Total)
			response := FromUseCaseResponse(result)
			response.Message = fmt.Sprintf(msgPartialFailure, len(result.Failed), result.Total)
			handlers.RespondJSON(w, http.StatusInternalServerError, response)

		default:
			h.logger.Error("POST /slots/{day}/disable-all - Failed to disable slots: day=%q, error=%v", day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{day}/disable-all - Slots disabled: day=%s, disabled=%d", result.Day, result.Disabled)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
