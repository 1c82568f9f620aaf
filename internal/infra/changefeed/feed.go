package changefeed

import (
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotInventory/internal/domain"
)

// Config параметры подключения к LISTEN/NOTIFY
type Config struct {
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
	PingInterval         time.Duration
}

// Feed лента изменений слотов
// Получает уведомления PostgreSQL (payload = метка дня) и раздает их подписчикам
// Владелец Feed обязан вызвать Close
type Feed struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	nextID      uint64
	closed      bool

	listener     *pq.Listener
	pingInterval time.Duration
	logger       Logger

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

type subscriber struct {
	ch   chan domain.DayLabel
	days map[domain.DayLabel]struct{} // пустой набор = все дни
}

func (s *subscriber) wants(day domain.DayLabel) bool {
	if len(s.days) == 0 {
		return true
	}
	_, ok := s.days[day]
	return ok
}

// Start подключается к PostgreSQL и начинает слушать канал channel
func Start(dsn, channel string, cfg Config, logger Logger) (*Feed, error) {
	listener := pq.NewListener(dsn, cfg.MinReconnectInterval, cfg.MaxReconnectInterval,
		func(ev pq.ListenerEventType, err error) {
			switch ev {
			case pq.ListenerEventConnected:
				logger.Info("ChangeFeed: connected, channel=%s", channel)
			case pq.ListenerEventDisconnected:
				logger.Warn("ChangeFeed: disconnected, channel=%s, error=%v", channel, err)
			case pq.ListenerEventReconnected:
				logger.Info("ChangeFeed: reconnected, channel=%s", channel)
			case pq.ListenerEventConnectionAttemptFailed:
				logger.Error("ChangeFeed: connection attempt failed, channel=%s, error=%v", channel, err)
			}
		})

	if err := listener.Listen(channel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrListen, channel, err)
	}

	f := newFeed(logger)
	f.listener = listener
	f.pingInterval = cfg.PingInterval
	if f.pingInterval <= 0 {
		f.pingInterval = time.Minute
	}

	f.wg.Add(1)
	go f.run()

	return f, nil
}

// NewInMemory создает ленту без подключения к БД
// Изменения публикуются только через Notify
func NewInMemory(logger Logger) *Feed {
	return newFeed(logger)
}

func newFeed(logger Logger) *Feed {
	return &Feed{
		subscribers: make(map[uint64]*subscriber),
		logger:      logger,
		done:        make(chan struct{}),
	}
}

// Subscribe регистрирует подписчика на изменения указанных дней (без аргументов - всех дней)
// Канал буферизован и склеивает уведомления: медленный подписчик может пропустить промежуточные,
// но после изменения всегда получит хотя бы одно
// Возвращаемая функция отменяет подписку и закрывает канал, повторный вызов безопасен
func (f *Feed) Subscribe(days ...domain.DayLabel) (<-chan domain.DayLabel, func(), error) {
	sub := &subscriber{
		ch:   make(chan domain.DayLabel, len(domain.DayLabels())),
		days: make(map[domain.DayLabel]struct{}, len(days)),
	}
	for _, day := range days {
		sub.days[day] = struct{}{}
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, nil, ErrClosed
	}
	id := f.nextID
	f.nextID++
	f.subscribers[id] = sub
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()

			if _, ok := f.subscribers[id]; ok {
				delete(f.subscribers, id)
				close(sub.ch)
			}
		})
	}

	return sub.ch, cancel, nil
}

// Notify сообщает подписчикам об изменении слотов дня
func (f *Feed) Notify(day domain.DayLabel) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subscribers {
		if sub.wants(day) {
			deliver(sub, day)
		}
	}
}

// NotifyAll сообщает каждому подписчику обо всех интересующих его днях
// Используется после переподключения, когда уведомления могли потеряться
func (f *Feed) NotifyAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subscribers {
		for _, day := range domain.DayLabels() {
			if sub.wants(day) {
				deliver(sub, day)
			}
		}
	}
}

// Subscribers возвращает количество активных подписчиков
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}

// Close останавливает прослушивание и закрывает каналы всех подписчиков
func (f *Feed) Close() error {
	var err error

	f.closeOnce.Do(func() {
		close(f.done)
		f.wg.Wait()

		if f.listener != nil {
			err = f.listener.Close()
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		f.closed = true
		for id, sub := range f.subscribers {
			delete(f.subscribers, id)
			close(sub.ch)
		}
	})

	return err
}

func (f *Feed) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-f.done:
			return

		case n, ok := <-f.listener.Notify:
			if !ok {
				return
			}
			// nil приходит после переподключения
			if n == nil {
				f.NotifyAll()
				continue
			}
			f.handlePayload(n.Extra)

		case <-ticker.C:
			go func() {
				if err := f.listener.Ping(); err != nil {
					f.logger.Warn("ChangeFeed: ping failed: %v", err)
				}
			}()
		}
	}
}

func (f *Feed) handlePayload(payload string) {
	day, err := domain.ParseDayLabel(payload)
	if err != nil {
		// строка со старой меткой дня: о ней узнают только подписчики всех дней
		f.logger.Warn("ChangeFeed: unknown day label in notification, payload=%q", payload)
		f.notifyUnfiltered(domain.DayLabel(payload))
		return
	}
	f.Notify(day)
}

func (f *Feed) notifyUnfiltered(day domain.DayLabel) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subscribers {
		if len(sub.days) == 0 {
			deliver(sub, day)
		}
	}
}

// deliver неблокирующая отправка, вызывается под f.mu
// Если буфер полон, у подписчика уже есть непрочитанное уведомление
func deliver(sub *subscriber, day domain.DayLabel) {
	select {
	case sub.ch <- day:
	default:
	}
}
