package get_capacities

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotInventory/internal/service/slots/models"
)

type staticService struct {
	resp *models.CapacitiesResponse
}

func (s staticService) Capacities() *models.CapacitiesResponse {
	return s.resp
}

func TestHandler_Handle(t *testing.T) {
	svc := staticService{resp: &models.CapacitiesResponse{
		Days: []string{"Today", "Tomorrow", "Day After Tomorrow"},
		Categories: []models.CategoryCapacity{
			{Category: "Electrician", Capacity: 4},
			{Category: "AC Services", Capacity: 2},
		},
	}}

	w := httptest.NewRecorder()
	NewHandler(svc).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots/capacities", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got models.CapacitiesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, *svc.resp, got)
}
