package reserve_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotInventory/internal/api/handlers"
	"github.com/m04kA/SMC-SlotInventory/internal/domain"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
	reserveSlot "github.com/m04kA/SMC-SlotInventory/internal/usecase/reserve_slot"
	"github.com/m04kA/SMC-SlotInventory/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *reserveSlot.Request) (*reserveSlot.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*reserveSlot.Response)
	return resp, args.Error(1)
}

func (m *useCaseMock) Release(ctx context.Context, req *reserveSlot.Request) (*reserveSlot.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*reserveSlot.Response)
	return resp, args.Error(1)
}

func newRequest(action string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/Today/Plumber/9:00%20AM/"+action, nil)
	return mux.SetURLVars(req, map[string]string{
		handlers.VarDay:      "Today",
		handlers.VarCategory: "Plumber",
		handlers.VarTime:     "9:00 AM",
	})
}

func TestHandler_Reserve(t *testing.T) {
	key, err := domain.NewSlotKey("Today", "Plumber", "9:00 AM")
	require.NoError(t, err)
	slot := &domain.Slot{Key: key, BookedCount: 3, TotalCapacity: 3, Active: true}

	uc := &useCaseMock{}
	uc.On("Execute", mock.Anything, &reserveSlot.Request{DayLabel: "Today", Category: "Plumber", Time: "9:00 AM"}).
		Return(&reserveSlot.Response{Slot: slot}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, newRequest("reserve"))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SlotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.BookedCount)
	assert.False(t, resp.IsAvailable)
	assert.Equal(t, domain.StatusFull, resp.Status)
}

func TestHandler_ErrorStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "full", err: reserveSlot.ErrSlotFull, status: http.StatusConflict},
		{name: "disabled", err: reserveSlot.ErrSlotDisabled, status: http.StatusConflict},
		{name: "legacy", err: reserveSlot.ErrLegacySlot, status: http.StatusConflict},
		{name: "concurrent", err: reserveSlot.ErrConflict, status: http.StatusConflict},
		{name: "not found", err: reserveSlot.ErrSlotNotFound, status: http.StatusNotFound},
		{name: "invalid", err: reserveSlot.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", err: reserveSlot.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &useCaseMock{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			w := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(w, newRequest("reserve"))

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestHandler_Release(t *testing.T) {
	uc := &useCaseMock{}
	uc.On("Release", mock.Anything, mock.Anything).Return(nil, reserveSlot.ErrNothingToRelease)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).HandleRelease(w, newRequest("release"))

	assert.Equal(t, http.StatusConflict, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
