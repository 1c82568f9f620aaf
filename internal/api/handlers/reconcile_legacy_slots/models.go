package reconcile_legacy_slots

import (
	reconcileLegacySlots "github.com/m04kA/SMC-SlotInventory/internal/usecase/reconcile_legacy_slots"
)

// ReconcileRequest HTTP request model
type ReconcileRequest struct {
	DryRun bool `json:"dryRun"`
}

// MigratedSlotResponse строка, которой были дописаны поля
type MigratedSlotResponse struct {
	ID     string   `json:"id"`
	Fields []string `json:"fields"`
}

// SkippedSlotResponse строка, пропущенная миграцией
type SkippedSlotResponse struct {
	DayLabel string `json:"dayLabel"`
	Category string `json:"category"`
	Time     string `json:"time"`
	Reason   string `json:"reason"`
}

// FailedSlotResponse строка, запись которой завершилась ошибкой
type FailedSlotResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// ReconcileResponse HTTP response model
type ReconcileResponse struct {
	DryRun   bool                   `json:"dryRun"`
	Scanned  int                    `json:"scanned"`
	Migrated []MigratedSlotResponse `json:"migrated"`
	Skipped  []SkippedSlotResponse  `json:"skipped"`
	Failed   []FailedSlotResponse   `json:"failed"`
	Message  string                 `json:"message,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reconcileLegacySlots.Response) *ReconcileResponse {
	out := &ReconcileResponse{
		DryRun:   resp.DryRun,
		Scanned:  resp.Scanned,
		Migrated: make([]MigratedSlotResponse, 0, len(resp.Migrated)),
		Skipped:  make([]SkippedSlotResponse, 0, len(resp.Skipped)),
		Failed:   make([]FailedSlotResponse, 0, len(resp.Failed)),
	}

	for _, m := range resp.Migrated {
		out.Migrated = append(out.Migrated, MigratedSlotResponse{ID: m.ID, Fields: m.Fields})
	}
	for _, s := range resp.Skipped {
		out.Skipped = append(out.Skipped, SkippedSlotResponse{
			DayLabel: s.DayLabel,
			Category: s.Category,
			Time:     s.Time,
			Reason:   s.Reason,
		})
	}
	for _, f := range resp.Failed {
		out.Failed = append(out.Failed, FailedSlotResponse{ID: f.ID, Error: f.Err.Error()})
	}

	return out
}
