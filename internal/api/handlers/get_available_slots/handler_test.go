package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-VenueBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

type MockGetAvailableSlotsUseCase struct {
	mock.Mock
}

func (m *MockGetAvailableSlotsUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getAvailableSlots.Response), args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/resources/{resourceId}/available-slots", h.Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	uc := new(MockGetAvailableSlotsUseCase)
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{ResourceID: 7, Date: "2025-10-15"}).
		Return(&getAvailableSlots.Response{
			ResourceID: 7,
			Date:       day,
			Morning: []getAvailableSlots.Slot{
				{ID: 1, Date: day, StartTime: "09:00", EndTime: "10:00", Price: types.MustMoney("120.00")},
			},
			Afternoon: []getAvailableSlots.Slot{},
			Evening:   []getAvailableSlots.Slot{},
		}, nil)

	rec := serve(NewHandler(uc, logger.Nop()), "/api/v1/resources/7/available-slots?date=2025-10-15")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `"2025-10-15"`, string(body["date"]))
	assert.JSONEq(t, `[{"id":1,"date":"2025-10-15","startTime":"09:00","endTime":"10:00","price":120.00}]`, string(body["morning"]))
	assert.JSONEq(t, `[]`, string(body["afternoon"]))
	assert.JSONEq(t, `[]`, string(body["evening"]))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		useCaseErr error
		wantStatus int
	}{
		{name: "bad id", target: "/api/v1/resources/abc/available-slots?date=2025-10-15", wantStatus: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/resources/7/available-slots", wantStatus: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/resources/7/available-slots?date=15-10-2025", useCaseErr: getAvailableSlots.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "unknown resource", target: "/api/v1/resources/7/available-slots?date=2025-10-15", useCaseErr: getAvailableSlots.ErrResourceNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", target: "/api/v1/resources/7/available-slots?date=2025-10-15", useCaseErr: getAvailableSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockGetAvailableSlotsUseCase)
			if tt.useCaseErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.useCaseErr)
			}

			rec := serve(NewHandler(uc, logger.Nop()), tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			uc.AssertExpectations(t)
		})
	}
}
