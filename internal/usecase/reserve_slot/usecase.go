package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	slotsRepo "github.com/m04kA/SMC-SlotInventory/internal/infra/storage/slots"
)

// Названия операций для метрик
const (
	OperationReserve = "reserve"
	OperationRelease = "release"
)

// UseCase use case бронирования места в слоте
// При конфликте запрос отклоняется: без очереди и без овербукинга
type UseCase struct {
	slotRepo SlotRepository
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil
func NewUseCase(slotRepo SlotRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute занимает одно место, если слот активен и не заполнен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() { uc.observe(OperationReserve, err) }()

	key, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ReserveSlot: slot=%s", key)

	slot, err := uc.slotRepo.Reserve(ctx, key)
	if err != nil {
		return nil, uc.mapRepoError("ReserveSlot", key.String(), err)
	}

	uc.logger.Info("ReserveSlot: slot=%s booked=%d/%d", key, slot.BookedCount, slot.TotalCapacity)
	return &Response{Slot: slot}, nil
}

// Release освобождает одно место (отмена бронирования)
func (uc *UseCase) Release(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() { uc.observe(OperationRelease, err) }()

	key, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ReleaseSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ReleaseSlot: slot=%s", key)

	slot, err := uc.slotRepo.Release(ctx, key)
	if err != nil {
		return nil, uc.mapRepoError("ReleaseSlot", key.String(), err)
	}

	uc.logger.Info("ReleaseSlot: slot=%s booked=%d/%d", key, slot.BookedCount, slot.TotalCapacity)
	return &Response{Slot: slot}, nil
}

func (uc *UseCase) mapRepoError(op, id string, err error) error {
	var mapped error
	switch {
	case errors.Is(err, slotsRepo.ErrSlotNotFound):
		mapped = ErrSlotNotFound
	case errors.Is(err, slotsRepo.ErrSlotFull):
		mapped = ErrSlotFull
	case errors.Is(err, slotsRepo.ErrSlotDisabled):
		mapped = ErrSlotDisabled
	case errors.Is(err, slotsRepo.ErrNothingToRelease):
		mapped = ErrNothingToRelease
	case errors.Is(err, slotsRepo.ErrLegacyShape):
		mapped = ErrLegacySlot
	case errors.Is(err, slotsRepo.ErrConcurrentUpdate):
		mapped = ErrConflict
	default:
		uc.logger.Error("%s: repository error for slot=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	uc.logger.Warn("%s: slot=%s rejected: %v", op, id, mapped)
	return mapped
}

func (uc *UseCase) observe(operation string, err error) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotOperation(operation, err)
	}
}
