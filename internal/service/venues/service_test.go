package venues

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBooking/internal/service/venues/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	args := m.Called(ctx, venue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	return m.Called(ctx, venue).Error(0)
}

func (m *MockVenueRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockVenueRepository) GetSummary(ctx context.Context, id int64) (*domain.VenueSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VenueSummary), args.Error(1)
}

func (m *MockVenueRepository) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.VenueSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.VenueSummary), args.Error(1)
}

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) List(ctx context.Context, filter domain.ResourceFilter) ([]*domain.ResourceSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.ResourceSummary), args.Error(1)
}

var (
	manager   = domain.Actor{ID: 10, Role: domain.RoleManager}
	other     = domain.Actor{ID: 11, Role: domain.RoleManager}
	organizer = domain.Actor{ID: 20, Role: domain.RoleOrganizer}
)

func setupService(t *testing.T) (*Service, *MockVenueRepository, *MockResourceRepository) {
	venues := new(MockVenueRepository)
	resources := new(MockResourceRepository)

	t.Cleanup(func() {
		venues.AssertExpectations(t)
		resources.AssertExpectations(t)
	})

	return NewService(venues, resources, logger.Nop()), venues, resources
}

func validRequest() *models.CreateVenueRequest {
	return &models.CreateVenueRequest{
		Name:        " Arena Paulista ",
		Description: "Quadras cobertas",
		Latitude:    -23.56,
		Longitude:   -46.65,
		City:        "São Paulo",
		Region:      "sp",
	}
}

func TestService_Create(t *testing.T) {
	t.Run("success normalizes fields", func(t *testing.T) {
		svc, venues, _ := setupService(t)
		venues.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.Venue) bool {
			return v.Name == "Arena Paulista" && v.Region == "SP" && v.ManagerID == manager.ID
		})).Return(&domain.Venue{ID: 1, ManagerID: manager.ID, Name: "Arena Paulista", City: "São Paulo", Region: "SP"}, nil)

		resp, err := svc.Create(context.Background(), manager, validRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "SP", resp.Region)
	})

	t.Run("duplicate name in city", func(t *testing.T) {
		svc, venues, _ := setupService(t)
		venues.On("Create", mock.Anything, mock.Anything).Return(nil, venueRepo.ErrVenueAlreadyExists)

		_, err := svc.Create(context.Background(), manager, validRequest())
		assert.ErrorIs(t, err, ErrVenueAlreadyExists)
	})

	t.Run("manager missing from users", func(t *testing.T) {
		svc, venues, _ := setupService(t)
		venues.On("Create", mock.Anything, mock.Anything).Return(nil, venueRepo.ErrManagerNotFound)

		_, err := svc.Create(context.Background(), manager, validRequest())
		assert.ErrorIs(t, err, ErrManagerNotFound)
		assert.NotErrorIs(t, err, ErrInternal)
	})

	t.Run("organizer cannot create", func(t *testing.T) {
		svc, _, _ := setupService(t)

		_, err := svc.Create(context.Background(), organizer, validRequest())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	invalid := []struct {
		name   string
		modify func(r *models.CreateVenueRequest)
	}{
		{name: "empty name", modify: func(r *models.CreateVenueRequest) { r.Name = "  " }},
		{name: "long name", modify: func(r *models.CreateVenueRequest) { r.Name = strings.Repeat("a", 65) }},
		{name: "unknown region", modify: func(r *models.CreateVenueRequest) { r.Region = "XX" }},
		{name: "latitude", modify: func(r *models.CreateVenueRequest) { r.Latitude = 91 }},
		{name: "longitude", modify: func(r *models.CreateVenueRequest) { r.Longitude = -181 }},
		{name: "no city", modify: func(r *models.CreateVenueRequest) { r.City = "" }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setupService(t)
			req := validRequest()
			tt.modify(req)

			_, err := svc.Create(context.Background(), manager, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Update(t *testing.T) {
	existing := func() *domain.Venue {
		return &domain.Venue{ID: 1, ManagerID: manager.ID, Name: "Arena", City: "Santos", Region: "SP"}
	}

	t.Run("owner updates", func(t *testing.T) {
		svc, venues, _ := setupService(t)
		venues.On("GetByID", mock.Anything, int64(1)).Return(existing(), nil)
		venues.On("Update", mock.Anything, mock.MatchedBy(func(v *domain.Venue) bool {
			return v.Name == "Arena Nova" && v.City == "Santos"
		})).Return(nil)

		resp, err := svc.Update(context.Background(), manager, 1, &models.UpdateVenueRequest{Name: ptr.Ptr("Arena Nova")})
		require.NoError(t, err)
		assert.Equal(t, "Arena Nova", resp.Name)
	})

	t.Run("foreign manager", func(t *testing.T) {
		svc, venues, _ := setupService(t)
		venues.On("GetByID", mock.Anything, int64(1)).Return(existing(), nil)

		_, err := svc.Update(context.Background(), other, 1, &models.UpdateVenueRequest{Name: ptr.Ptr("x")})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc, venues, _ := setupService(t)
		venues.On("GetByID", mock.Anything, int64(2)).Return(nil, venueRepo.ErrVenueNotFound)

		_, err := svc.Update(context.Background(), manager, 2, &models.UpdateVenueRequest{})
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})
}

func TestService_GetByID(t *testing.T) {
	svc, venues, resources := setupService(t)
	price := types.MustMoney("80.00")
	venues.On("GetSummary", mock.Anything, int64(1)).Return(&domain.VenueSummary{
		Venue:        domain.Venue{ID: 1, Name: "Arena", AverageRating: 4.5},
		MinOpenPrice: &price,
		RatingsCount: 3,
	}, nil)
	resources.On("List", mock.Anything, domain.ResourceFilter{VenueID: ptr.Ptr(int64(1))}).Return([]*domain.ResourceSummary{
		{Resource: domain.Resource{ID: 7, Name: "Quadra 1", Category: domain.CategoryTennis}, MinOpenPrice: &price},
	}, nil)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4.5, resp.AverageRating)
	assert.Equal(t, 3, resp.RatingsCount)
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "tennis", resp.Resources[0].Category)
}

func TestService_Search(t *testing.T) {
	svc, venues, _ := setupService(t)
	tennis := domain.CategoryTennis
	venues.On("List", mock.Anything, domain.VenueFilter{
		City:     ptr.Ptr("paulo"),
		Region:   ptr.Ptr("SP"),
		Category: &tennis,
	}).Return([]*domain.VenueSummary{{Venue: domain.Venue{ID: 1}}}, nil)

	resp, err := svc.Search(context.Background(), &models.SearchVenuesRequest{
		Name:     ptr.Ptr(" "),
		City:     ptr.Ptr("paulo"),
		Region:   ptr.Ptr("sp"),
		Category: ptr.Ptr("Tennis"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = svc.Search(context.Background(), &models.SearchVenuesRequest{Category: ptr.Ptr("chess")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
