package watch_slots

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
	watchSlots "github.com/m04kA/SMC-SlotInventory/internal/usecase/watch_slots"
)

const (
	msgInvalidDay      = "некорректная метка дня"
	msgUnavailable     = "поток обновлений временно недоступен"
	msgSnapshotFailed  = "не удалось загрузить слоты, ожидаем следующее обновление"
	transportWebsocket = "websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Handler struct {
	useCase  WatchSlotsUseCase
	upgrader websocket.Upgrader
	metrics  Metrics
	logger   Logger
}

// NewHandler создает обработчик потока слотов
// allowedOrigins ограничивает Origin websocket запросов, "*" разрешает любой
func NewHandler(useCase WatchSlotsUseCase, allowedOrigins []string, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin(allowedOrigins),
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/watch
// Query params: day (optional)
// Каждое сообщение - полный снимок слотов; закрытие соединения отменяет подписку
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &watchSlots.Request{}
	if raw := r.URL.Query().Get("day"); raw != "" {
		req.DayLabel = &raw
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sub, err := h.useCase.Subscribe(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, watchSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots/watch - Invalid day: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDay)
		case errors.Is(err, watchSlots.ErrUnavailable):
			h.logger.Error("GET /slots/watch - Change feed unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)
		default:
			h.logger.Error("GET /slots/watch - Failed to subscribe: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}
	defer sub.Cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже отправил ответ с ошибкой
		h.logger.Warn("GET /slots/watch - Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.SubscriptionOpened(transportWebsocket)
		defer h.metrics.SubscriptionClosed(transportWebsocket)
	}

	h.logger.Info("GET /slots/watch - Client connected: remote=%s", r.RemoteAddr)

	// Чтение нужно для обработки pong и обнаружения закрытия соединения клиентом
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /slots/watch - Client disconnected: remote=%s", r.RemoteAddr)
			return

		case update, ok := <-sub.Updates():
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
				return
			}

			frame := Frame{Type: FrameSnapshot, Data: update.Snapshot}
			if update.Err != nil {
				frame = Frame{Type: FrameError, Message: msgSnapshotFailed}
			}

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(frame); err != nil {
				h.logger.Warn("GET /slots/watch - Write failed: remote=%s, error=%v", r.RemoteAddr, err)
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}
