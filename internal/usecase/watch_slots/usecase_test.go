package watch_slots

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	"github.com/m04kA/SMC-SlotInventory/internal/infra/changefeed"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
	"github.com/m04kA/SMC-SlotInventory/pkg/logger"
)

type fakeService struct {
	mu    sync.Mutex
	calls int
	errOn map[int]error
}

func (s *fakeService) GetSlots(_ context.Context, day *domain.DayLabel) (*models.SlotsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if err, ok := s.errOn[s.calls]; ok {
		return nil, err
	}

	resp := &models.SlotsResponse{}
	days := domain.DayLabels()
	if day != nil {
		days = []domain.DayLabel{*day}
	}
	for _, d := range days {
		resp.Days = append(resp.Days, models.DaySlots{DayLabel: d.String(), Skipped: s.calls})
	}
	return resp, nil
}

func next(t *testing.T, sub *Subscription) Update {
	t.Helper()
	select {
	case u, ok := <-sub.Updates():
		require.True(t, ok, "updates channel closed")
		return u
	case <-time.After(time.Second):
		t.Fatal("no update received")
		return Update{}
	}
}

func noUpdate(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case u := <-sub.Updates():
		t.Fatalf("unexpected update: %+v", u)
	case <-time.After(50 * time.Millisecond):
	}
}

func setup(t *testing.T) (*UseCase, *changefeed.Feed, *fakeService) {
	t.Helper()
	feed := changefeed.NewInMemory(logger.NewNop())
	t.Cleanup(func() { _ = feed.Close() })
	svc := &fakeService{errOn: map[int]error{}}
	return NewUseCase(svc, feed, logger.NewNop()), feed, svc
}

func TestUseCase_InitialSnapshotThenChanges(t *testing.T) {
	uc, feed, _ := setup(t)
	day := "today"

	sub, err := uc.Subscribe(context.Background(), &Request{DayLabel: &day})
	require.NoError(t, err)
	defer sub.Cancel()

	first := next(t, sub)
	require.NoError(t, first.Err)
	require.Len(t, first.Snapshot.Days, 1)
	assert.Equal(t, "Today", first.Snapshot.Days[0].DayLabel)
	assert.Equal(t, 1, first.Snapshot.Days[0].Skipped)

	feed.Notify(domain.DayToday)
	second := next(t, sub)
	assert.Equal(t, 2, second.Snapshot.Days[0].Skipped)

	// изменения других дней не интересуют подписчика
	feed.Notify(domain.DayTomorrow)
	noUpdate(t, sub)
}

func TestUseCase_AllDays(t *testing.T) {
	uc, feed, _ := setup(t)

	sub, err := uc.Subscribe(context.Background(), &Request{})
	require.NoError(t, err)
	defer sub.Cancel()

	assert.Len(t, next(t, sub).Snapshot.Days, 3)

	feed.Notify(domain.DayDayAfterTomorrow)
	assert.Len(t, next(t, sub).Snapshot.Days, 3)
}

func TestUseCase_ReadErrorDoesNotEndStream(t *testing.T) {
	uc, feed, svc := setup(t)
	svc.errOn[2] = errors.New("db down")

	sub, err := uc.Subscribe(context.Background(), &Request{})
	require.NoError(t, err)
	defer sub.Cancel()

	require.NoError(t, next(t, sub).Err)

	feed.Notify(domain.DayToday)
	failed := next(t, sub)
	assert.Error(t, failed.Err)
	assert.Nil(t, failed.Snapshot)

	feed.Notify(domain.DayToday)
	recovered := next(t, sub)
	assert.NoError(t, recovered.Err)
	assert.NotNil(t, recovered.Snapshot)
}

func TestUseCase_CancelStopsDeliveryAndReleasesFeed(t *testing.T) {
	uc, feed, svc := setup(t)

	sub, err := uc.Subscribe(context.Background(), &Request{})
	require.NoError(t, err)
	next(t, sub)
	assert.Equal(t, 1, feed.Subscribers())

	sub.Cancel()
	sub.Cancel()

	_, ok := <-sub.Updates()
	assert.False(t, ok)
	assert.Equal(t, 0, feed.Subscribers())

	svc.mu.Lock()
	calls := svc.calls
	svc.mu.Unlock()

	feed.Notify(domain.DayToday)
	time.Sleep(20 * time.Millisecond)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Equal(t, calls, svc.calls)
}

func TestUseCase_ContextCancellation(t *testing.T) {
	uc, feed, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())

	sub, err := uc.Subscribe(ctx, &Request{})
	require.NoError(t, err)

	// начальный снимок не прочитан: отмена не должна зависнуть на отправке
	cancel()

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription did not stop")
	}
	assert.Equal(t, 0, feed.Subscribers())
}

func TestUseCase_FeedClosedEndsSubscription(t *testing.T) {
	uc, feed, _ := setup(t)

	sub, err := uc.Subscribe(context.Background(), &Request{})
	require.NoError(t, err)
	next(t, sub)

	require.NoError(t, feed.Close())

	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription did not stop")
	}

	_, err = uc.Subscribe(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUseCase_InvalidDay(t *testing.T) {
	uc, feed, _ := setup(t)
	day := "someday"

	_, err := uc.Subscribe(context.Background(), &Request{DayLabel: &day})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, feed.Subscribers())
}
