package watch_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// UseCase use case живой подписки на слоты
type UseCase struct {
	slotsService SlotsService
	feed         ChangeFeed
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotsService SlotsService, feed ChangeFeed, logger Logger) *UseCase {
	return &UseCase{
		slotsService: slotsService,
		feed:         feed,
		logger:       logger,
	}
}

// Subscribe отправляет начальный снимок, затем новый полный снимок после каждого изменения
// запрошенных дней
func (uc *UseCase) Subscribe(ctx context.Context, req *Request) (*Subscription, error) {
	day, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("WatchSlots: validation failed: %v", err)
		return nil, err
	}

	var days []domain.DayLabel
	if day != nil {
		days = append(days, *day)
	}

	changes, release, err := uc.feed.Subscribe(days...)
	if err != nil {
		uc.logger.Error("WatchSlots: failed to subscribe to change feed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		updates: make(chan Update),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	uc.logger.Info("WatchSlots: subscription started, day=%s", dayForLog(day))

	go uc.run(ctx, sub, day, changes, release)

	return sub, nil
}

func (uc *UseCase) run(
	ctx context.Context,
	sub *Subscription,
	day *domain.DayLabel,
	changes <-chan domain.DayLabel,
	release func(),
) {
	defer close(sub.done)
	defer close(sub.updates)
	defer release()
	defer uc.logger.Info("WatchSlots: subscription stopped, day=%s", dayForLog(day))

	if !uc.push(ctx, sub, day) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				// лента закрыта при остановке сервиса
				return
			}
			if !uc.push(ctx, sub, day) {
				return
			}
		}
	}
}

// push читает свежий снимок и отдает его подписчику
// Возвращает false, если подписка отменена
func (uc *UseCase) push(ctx context.Context, sub *Subscription, day *domain.DayLabel) bool {
	snapshot, err := uc.slotsService.GetSlots(ctx, day)
	if ctx.Err() != nil {
		return false
	}

	update := Update{Snapshot: snapshot, Err: err}
	if err != nil {
		uc.logger.Warn("WatchSlots: snapshot read failed, day=%s: %v", dayForLog(day), err)
		update.Snapshot = nil
	}

	select {
	case <-ctx.Done():
		return false
	case sub.updates <- update:
		return true
	}
}

func dayForLog(day *domain.DayLabel) string {
	if day == nil {
		return "all"
	}
	return day.String()
}
