package disable_day_slots

import (
	"context"
	"fmt"
)

// UseCase use case для отключения всех слотов дня
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute отключает каждый слот дня во всех категориях
// Записи независимы: ошибка одного слота не останавливает остальные и не откатывает уже отключенные
// При частичном отказе возвращается и ответ, и *PartialFailureError
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DisableDaySlots: day=%q, confirmed=%t", req.DayLabel, req.Confirmed)

	// 1. Валидация и подтверждение
	day, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("DisableDaySlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем все слоты дня
	keys, err := uc.slotRepo.ListKeysByDay(ctx, day)
	if err != nil {
		uc.logger.Error("DisableDaySlots: failed to list slots for day=%s: %v", day, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	resp := &Response{Day: day, Total: len(keys)}

	// 3. Отключаем каждый слот отдельной записью
	for _, key := range keys {
		if _, err := uc.slotRepo.SetActive(ctx, key, false); err != nil {
			uc.logger.Error("DisableDaySlots: failed to disable slot=%s: %v", key, err)
			resp.Failed = append(resp.Failed, FailedSlot{Key: key, Err: err})
			continue
		}
		resp.Disabled++
	}

	if len(resp.Failed) > 0 {
		uc.logger.Warn("DisableDaySlots: day=%s disabled=%d failed=%d total=%d",
			day, resp.Disabled, len(resp.Failed), resp.Total)
		return resp, &PartialFailureError{Total: resp.Total, Failed: resp.Failed}
	}

	uc.logger.Info("DisableDaySlots: day=%s disabled=%d", day, resp.Disabled)
	return resp, nil
}
