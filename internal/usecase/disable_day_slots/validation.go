package disable_day_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Подтверждение проверяется до обращения к хранилищу
func validateRequest(req *Request) (domain.DayLabel, error) {
	if !req.Confirmed {
		return "", ErrConfirmationRequired
	}

	day, err := domain.ParseDayLabel(req.DayLabel)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return day, nil
}
