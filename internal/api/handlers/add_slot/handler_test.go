package add_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	slotsService "github.com/m04kA/SMC-SlotInventory/internal/service/slots"
	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
	"github.com/m04kA/SMC-SlotInventory/pkg/logger"
)

type serviceMock struct {
	mock.Mock
}

func (m *serviceMock) AddSlot(ctx context.Context, req *models.AddSlotRequest) (*models.SlotResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.SlotResponse)
	return resp, args.Error(1)
}

func TestHandler_Handle(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		svcResp *models.SlotResponse
		svcErr  error
		status  int
		called  bool
	}{
		{
			name:    "created",
			body:    `{"category":"Plumber","dayLabel":"Today","time":"9:00 AM"}`,
			svcResp: &models.SlotResponse{ID: "Today/Plumber/9:00 AM", TotalCapacity: 3, Active: true, IsAvailable: true},
			status:  http.StatusCreated,
			called:  true,
		},
		{
			name:   "validation error",
			body:   `{"category":"Plumber","dayLabel":"Today","time":" "}`,
			svcErr: slotsService.ErrInvalidInput,
			status: http.StatusBadRequest,
			called: true,
		},
		{
			name:   "store error",
			body:   `{"category":"Plumber","dayLabel":"Today","time":"9:00 AM"}`,
			svcErr: slotsService.ErrInternal,
			status: http.StatusInternalServerError,
			called: true,
		},
		{
			name:   "malformed json",
			body:   `{"category":`,
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &serviceMock{}
			svc.On("AddSlot", mock.Anything, mock.Anything).Return(tc.svcResp, tc.svcErr).Maybe()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/slots", strings.NewReader(tc.body))
			NewHandler(svc, logger.NewNop()).Handle(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.called {
				svc.AssertNumberOfCalls(t, "AddSlot", 1)
			} else {
				svc.AssertNotCalled(t, "AddSlot", mock.Anything, mock.Anything)
			}
		})
	}
}
