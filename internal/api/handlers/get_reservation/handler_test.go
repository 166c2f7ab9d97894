package get_reservation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

func TestHandle(t *testing.T) {
	manager := domain.Actor{ID: 10, Role: domain.RoleManager}

	tests := []struct {
		name       string
		path       string
		withActor  bool
		result     *models.ReservationResponse
		serviceErr error
		wantStatus int
	}{
		{name: "venue manager", path: "/reservations/4", withActor: true, result: &models.ReservationResponse{ID: 4}, wantStatus: http.StatusOK},
		{name: "bad id", path: "/reservations/four", withActor: true, wantStatus: http.StatusBadRequest},
		{name: "no actor", path: "/reservations/4", wantStatus: http.StatusUnauthorized},
		{name: "stranger", path: "/reservations/4", withActor: true, serviceErr: reservations.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "not found", path: "/reservations/4", withActor: true, serviceErr: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", path: "/reservations/4", withActor: true, serviceErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReservationService)
			if tt.result != nil || tt.serviceErr != nil {
				svc.On("GetByID", mock.Anything, manager, int64(4)).Return(tt.result, tt.serviceErr)
			}

			r := mux.NewRouter()
			r.HandleFunc("/reservations/{reservationId}", NewHandler(svc, logger.Nop()).Handle)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.withActor {
				req = req.WithContext(middleware.WithActor(req.Context(), manager))
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
