package watch_slots

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

// Request модель запроса на подписку
type Request struct {
	DayLabel *string // nil - все дни окна
}

// Update очередное значение подписки: полный снимок или ошибка чтения
// Ошибка не завершает подписку
type Update struct {
	Snapshot *models.SlotsResponse
	Err      error
}

// Subscription живая подписка на слоты
// Не завершается сама: только через Cancel или отмену контекста
type Subscription struct {
	updates chan Update
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// Updates возвращает канал обновлений, закрывается после завершения подписки
func (s *Subscription) Updates() <-chan Update {
	return s.updates
}

// Cancel завершает подписку и ждет освобождения ресурсов
// После возврата значения больше не доставляются; повторный вызов безопасен
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
	<-s.done
}

// Done закрывается, когда подписка завершена
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
