package reserve_slot

import (
	"fmt"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// validateRequest валидирует и нормализует ключ слота
func validateRequest(req *Request) (domain.SlotKey, error) {
	key, err := domain.NewSlotKey(req.DayLabel, req.Category, req.Time)
	if err != nil {
		return domain.SlotKey{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return key, nil
}
