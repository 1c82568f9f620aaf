package watch_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// validateRequest возвращает запрошенный день или nil для всех дней
func validateRequest(req *Request) (*domain.DayLabel, error) {
	if req.DayLabel == nil {
		return nil, nil
	}

	day, err := domain.ParseDayLabel(*req.DayLabel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &day, nil
}
