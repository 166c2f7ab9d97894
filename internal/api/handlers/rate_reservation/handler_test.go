package rate_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
)

type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) Rate(ctx context.Context, actor domain.Actor, id int64, req *models.RateRequest) (*models.ReservationResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

var organizer = domain.Actor{ID: 5, Role: domain.RoleOrganizer}

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}/rating", h.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), organizer))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Rated(t *testing.T) {
	svc := new(MockReservationService)
	svc.On("Rate", mock.Anything, organizer, int64(6), &models.RateRequest{
		ServiceRating: ptr.Ptr(5),
		Comment:       ptr.Ptr("ótimo"),
	}).Return(&models.ReservationResponse{ID: 6, Status: "paid"}, nil)

	rec := serve(NewHandler(svc, logger.Nop()), "/reservations/6/rating", `{"serviceRating":5,"comment":"ótimo"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "bad id", path: "/reservations/0/rating", body: `{"serviceRating":5}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", path: "/reservations/6/rating", body: `{"serviceRating":`, wantStatus: http.StatusBadRequest},
		{name: "out of range", path: "/reservations/6/rating", body: `{"serviceRating":9}`, serviceErr: reservations.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not paid", path: "/reservations/6/rating", body: `{"serviceRating":5}`, serviceErr: reservations.ErrNotRatable, wantStatus: http.StatusBadRequest},
		{name: "foreign", path: "/reservations/6/rating", body: `{"serviceRating":5}`, serviceErr: reservations.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "not found", path: "/reservations/6/rating", body: `{"serviceRating":5}`, serviceErr: reservations.ErrReservationNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", path: "/reservations/6/rating", body: `{"serviceRating":5}`, serviceErr: reservations.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReservationService)
			if tt.serviceErr != nil {
				svc.On("Rate", mock.Anything, organizer, int64(6), mock.Anything).Return(nil, tt.serviceErr)
			}

			rec := serve(NewHandler(svc, logger.Nop()), tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
