package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotInventory/pkg/logger"
)

type memoryLocker struct {
	mu   sync.Mutex
	keys map[string]struct{}
	err  error
}

func newMemoryLocker() *memoryLocker {
	return &memoryLocker{keys: make(map[string]struct{})}
}

func (l *memoryLocker) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	if _, ok := l.keys[key]; ok {
		return false, nil
	}
	l.keys[key] = struct{}{}
	return true, nil
}

func (l *memoryLocker) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.keys, key)
	return nil
}

func (l *memoryLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}

func TestSubmissionGuard(t *testing.T) {
	locker := newMemoryLocker()
	release := make(chan struct{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if string(body) == `{"confirm":true}` {
			<-release
		}
		w.WriteHeader(http.StatusOK)
	})
	handler := SubmissionGuard(locker, "test:", time.Minute, logger.NewNop())(next)

	send := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/today/disable", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	firstDone := make(chan int, 1)
	go func() { firstDone <- send(`{"confirm":true}`) }()

	require.Eventually(t, func() bool { return locker.held() == 1 }, time.Second, 5*time.Millisecond)

	// та же отправка, пока первая не завершилась
	assert.Equal(t, http.StatusConflict, send(`{"confirm":true}`))

	// другое тело проходит
	assert.Equal(t, http.StatusOK, send(`{"confirm":false}`))

	close(release)
	assert.Equal(t, http.StatusOK, <-firstDone)
	assert.Equal(t, 0, locker.held())

	// после завершения повтор разрешен
	assert.Equal(t, http.StatusOK, send(`{"confirm":true}`))
}

func TestSubmissionGuard_SkipsReads(t *testing.T) {
	locker := newMemoryLocker()
	locker.err = errors.New("must not be called")

	handler := SubmissionGuard(locker, "test:", time.Minute, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmissionGuard_LockerUnavailable(t *testing.T) {
	locker := newMemoryLocker()
	locker.err = errors.New("connection refused")

	var called bool
	handler := SubmissionGuard(locker, "test:", time.Minute, logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/slots", strings.NewReader(`{}`)))

	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestSubmissionKey(t *testing.T) {
	base := submissionKey("u-1", http.MethodPost, "/a", []byte("x"))

	assert.Equal(t, base, submissionKey("u-1", http.MethodPost, "/a", []byte("x")))
	assert.NotEqual(t, base, submissionKey("u-2", http.MethodPost, "/a", []byte("x")))
	assert.NotEqual(t, base, submissionKey("u-1", http.MethodPatch, "/a", []byte("x")))
	assert.NotEqual(t, base, submissionKey("u-1", http.MethodPost, "/b", []byte("x")))
	assert.NotEqual(t, base, submissionKey("u-1", http.MethodPost, "/a", []byte("y")))
}
