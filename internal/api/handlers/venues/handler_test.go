package venues

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
	"github.com/m04kA/SMC-VenueBooking/internal/service/venues"
	"github.com/m04kA/SMC-VenueBooking/internal/service/venues/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
)

type MockVenueService struct {
	mock.Mock
}

func (m *MockVenueService) Create(ctx context.Context, actor domain.Actor, req *models.CreateVenueRequest) (*models.VenueResponse, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VenueResponse), args.Error(1)
}

func (m *MockVenueService) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateVenueRequest) (*models.VenueResponse, error) {
	args := m.Called(ctx, actor, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VenueResponse), args.Error(1)
}

func (m *MockVenueService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockVenueService) GetByID(ctx context.Context, id int64) (*models.VenueDetailsResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VenueDetailsResponse), args.Error(1)
}

func (m *MockVenueService) Search(ctx context.Context, req *models.SearchVenuesRequest) (*models.VenueListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VenueListResponse), args.Error(1)
}

func (m *MockVenueService) ListMine(ctx context.Context, actor domain.Actor) (*models.VenueListResponse, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VenueListResponse), args.Error(1)
}

var manager = domain.Actor{ID: 10, Role: domain.RoleManager}

func router(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/venues", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/venues", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/venues/{venueId}", h.Delete).Methods(http.MethodDelete)
	return r
}

func TestSearch_PassesOnlyGivenFilters(t *testing.T) {
	svc := new(MockVenueService)
	svc.On("Search", mock.Anything, &models.SearchVenuesRequest{
		City:     ptr.Ptr("Campinas"),
		Category: ptr.Ptr("tennis"),
	}).Return(&models.VenueListResponse{}, nil)

	rec := httptest.NewRecorder()
	router(NewHandler(svc, logger.Nop())).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues?city=Campinas&category=tennis", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "duplicate", serviceErr: venues.ErrVenueAlreadyExists, wantStatus: http.StatusConflict},
		{name: "manager not registered", serviceErr: venues.ErrManagerNotFound, wantStatus: http.StatusNotFound},
		{name: "organizer", serviceErr: venues.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "invalid", serviceErr: venues.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", serviceErr: venues.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockVenueService)
			svc.On("Create", mock.Anything, manager, mock.Anything).Return(nil, tt.serviceErr)

			req := httptest.NewRequest(http.MethodPost, "/venues", strings.NewReader(`{"name":"Arena","city":"Campinas","region":"SP"}`))
			req = req.WithContext(middleware.WithActor(req.Context(), manager))
			rec := httptest.NewRecorder()
			router(NewHandler(svc, logger.Nop())).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestDelete(t *testing.T) {
	svc := new(MockVenueService)
	svc.On("Delete", mock.Anything, manager, int64(4)).Return(nil).Once()
	svc.On("Delete", mock.Anything, manager, int64(5)).Return(venues.ErrVenueNotFound).Once()
	r := router(NewHandler(svc, logger.Nop()))

	for id, want := range map[string]int{"4": http.StatusNoContent, "5": http.StatusNotFound, "0": http.StatusBadRequest} {
		req := httptest.NewRequest(http.MethodDelete, "/venues/"+id, nil)
		req = req.WithContext(middleware.WithActor(req.Context(), manager))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "venue %s", id)
	}
	svc.AssertExpectations(t)
}
