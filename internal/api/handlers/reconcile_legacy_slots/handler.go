package reconcile_legacy_slots

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
	reconcileLegacySlots "github.com/m04kA/SMC-SlotInventory/internal/usecase/reconcile_legacy_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPartialFailure     = "часть слотов не удалось мигрировать (%d), повторите запуск"
)

type Handler struct {
	useCase ReconcileLegacySlotsUseCase
	logger  Logger
}

func NewHandler(useCase ReconcileLegacySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/reconcile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ReconcileRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/reconcile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reconcileLegacySlots.Request{DryRun: req.DryRun})
	if err != nil {
		switch {
		case errors.Is(err, reconcileLegacySlots.ErrPartialFailure) && result != nil:
			h.logger.Error("POST /slots/reconcile - Partial failure: failed=%d, scanned=%d", len(result.Failed), result.Scanned)
			response := FromUseCaseResponse(result)
			response.Message = fmt.Sprintf(msgPartialFailure, len(result.Failed))
			handlers.RespondJSON(w, http.StatusInternalServerError, response)

		default:
			h.logger.Error("POST /slots/reconcile - Failed to reconcile slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/reconcile - Done: scanned=%d, migrated=%d, skipped=%d, dryRun=%t",
		result.Scanned, len(result.Migrated), len(result.Skipped), result.DryRun)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
