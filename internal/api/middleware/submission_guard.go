package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
)

const (
	msgDuplicateSubmission = "такой запрос уже выполняется"
	maxGuardedBodyBytes    = 1 << 20
)

// SubmissionGuard не дает выполнить одну и ту же мутацию дважды одновременно
// Ключ: администратор, метод, путь и хэш тела. Блокировка снимается после ответа,
// TTL страхует от зависших обработчиков
func SubmissionGuard(locker SubmissionLocker, keyPrefix string, ttl time.Duration, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(io.LimitReader(r.Body, maxGuardedBodyBytes))
			if err != nil {
				handlers.RespondBadRequest(w, "не удалось прочитать тело запроса")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key := keyPrefix + submissionKey(UserIDFromContext(r.Context()), r.Method, r.URL.Path, body)

			acquired, err := locker.Acquire(r.Context(), key, ttl)
			if err != nil {
				// хранилище недоступно: не блокируем работу администратора
				logger.Error("SubmissionGuard: failed to acquire %s: %v", key, err)
				next.ServeHTTP(w, r)
				return
			}
			if !acquired {
				logger.Warn("SubmissionGuard: duplicate submission %s %s", r.Method, r.URL.Path)
				handlers.RespondConflict(w, msgDuplicateSubmission)
				return
			}

			defer func() {
				// запрос мог быть отменен клиентом, снимаем блокировку отдельным контекстом
				if err := locker.Release(context.WithoutCancel(r.Context()), key); err != nil {
					logger.Warn("SubmissionGuard: failed to release %s: %v", key, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func submissionKey(userID, method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(userID))
	h.Write([]byte{0})
	h.Write([]byte(method))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
