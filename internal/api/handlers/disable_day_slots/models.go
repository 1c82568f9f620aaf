package disable_day_slots

import (
	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	disableDaySlots "github.com/m04kA/SMC-SlotInventory/internal/usecase/disable_day_slots"
)

// DisableDaySlotsRequest HTTP request model
// confirmDayLabel должен повторять день из пути
type DisableDaySlotsRequest struct {
	Confirm         bool   `json:"confirm"`
	ConfirmDayLabel string `json:"confirmDayLabel"`
}

// FailedSlotResponse слот, который не удалось отключить
type FailedSlotResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// DisableDaySlotsResponse HTTP response model
type DisableDaySlotsResponse struct {
	DayLabel string               `json:"dayLabel"`
	Total    int                  `json:"total"`
	Disabled int                  `json:"disabled"`
	Failed   []FailedSlotResponse `json:"failed"`
	Message  string               `json:"message,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DisableDaySlotsRequest) ToUseCaseRequest(day string) *disableDaySlots.Request {
	return &disableDaySlots.Request{
		DayLabel:  day,
		Confirmed: r.Confirm && sameDay(day, r.ConfirmDayLabel),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *disableDaySlots.Response) *DisableDaySlotsResponse {
	out := &DisableDaySlotsResponse{
		DayLabel: resp.Day.String(),
		Total:    resp.Total,
		Disabled: resp.Disabled,
		Failed:   make([]FailedSlotResponse, 0, len(resp.Failed)),
	}

	for _, f := range resp.Failed {
		out.Failed = append(out.Failed, FailedSlotResponse{ID: f.Key.String(), Error: f.Err.Error()})
	}

	return out
}

func sameDay(a, b string) bool {
	dayA, err := domain.ParseDayLabel(a)
	if err != nil {
		return false
	}
	dayB, err := domain.ParseDayLabel(b)
	if err != nil {
		return false
	}
	return dayA == dayB
}
