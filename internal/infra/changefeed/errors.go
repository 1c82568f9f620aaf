package changefeed

import "errors"

var (
	// ErrListen возвращается, когда не удалось подписаться на канал уведомлений
	ErrListen = errors.New("changefeed: failed to listen channel")

	// ErrClosed возвращается при подписке на закрытую ленту изменений
	ErrClosed = errors.New("changefeed: feed is closed")
)
