package resources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	resourceRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/resource"
	venueRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBooking/internal/service/resources/models"
	"github.com/m04kA/SMC-VenueBooking/pkg/logger"
	"github.com/m04kA/SMC-VenueBooking/pkg/ptr"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	return m.Called(ctx, resource).Error(0)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockResourceRepository) GetSummary(ctx context.Context, id int64) (*domain.ResourceSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceSummary), args.Error(1)
}

func (m *MockResourceRepository) List(ctx context.Context, filter domain.ResourceFilter) ([]*domain.ResourceSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.ResourceSummary), args.Error(1)
}

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

var (
	manager = domain.Actor{ID: 10, Role: domain.RoleManager}
	other   = domain.Actor{ID: 11, Role: domain.RoleManager}
)

func setupService(t *testing.T) (*Service, *MockResourceRepository, *MockVenueRepository) {
	resources := new(MockResourceRepository)
	venues := new(MockVenueRepository)

	t.Cleanup(func() {
		resources.AssertExpectations(t)
		venues.AssertExpectations(t)
	})

	return NewService(resources, venues, logger.Nop()), resources, venues
}

func TestService_Create(t *testing.T) {
	req := func() *models.CreateResourceRequest {
		return &models.CreateResourceRequest{VenueID: 3, Name: "Quadra 1", Category: "Tennis"}
	}

	t.Run("success", func(t *testing.T) {
		svc, resources, venues := setupService(t)
		venues.On("GetByID", mock.Anything, int64(3)).Return(&domain.Venue{ID: 3, ManagerID: manager.ID}, nil)
		resources.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Resource) bool {
			return r.Category == domain.CategoryTennis && r.Name == "Quadra 1"
		})).Return(&domain.Resource{ID: 7, VenueID: 3, Name: "Quadra 1", Category: domain.CategoryTennis}, nil)

		resp, err := svc.Create(context.Background(), manager, req())
		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, []string{}, resp.Photos)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, resources, venues := setupService(t)
		venues.On("GetByID", mock.Anything, int64(3)).Return(&domain.Venue{ID: 3, ManagerID: manager.ID}, nil)
		resources.On("Create", mock.Anything, mock.Anything).Return(nil, resourceRepo.ErrResourceAlreadyExists)

		_, err := svc.Create(context.Background(), manager, req())
		assert.ErrorIs(t, err, ErrResourceAlreadyExists)
	})

	t.Run("foreign venue", func(t *testing.T) {
		svc, _, venues := setupService(t)
		venues.On("GetByID", mock.Anything, int64(3)).Return(&domain.Venue{ID: 3, ManagerID: manager.ID}, nil)

		_, err := svc.Create(context.Background(), other, req())
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing venue", func(t *testing.T) {
		svc, _, venues := setupService(t)
		venues.On("GetByID", mock.Anything, int64(3)).Return(nil, venueRepo.ErrVenueNotFound)

		_, err := svc.Create(context.Background(), manager, req())
		assert.ErrorIs(t, err, ErrVenueNotFound)
	})

	t.Run("unknown category", func(t *testing.T) {
		svc, _, _ := setupService(t)
		r := req()
		r.Category = "chess"

		_, err := svc.Create(context.Background(), manager, r)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Update(t *testing.T) {
	svc, resources, _ := setupService(t)
	resources.On("GetSummary", mock.Anything, int64(7)).Return(&domain.ResourceSummary{
		Resource: domain.Resource{ID: 7, VenueID: 3, Name: "Quadra 1", Category: domain.CategoryTennis},
		Venue:    domain.Venue{ID: 3, ManagerID: manager.ID},
	}, nil)
	resources.On("Update", mock.Anything, mock.MatchedBy(func(r *domain.Resource) bool {
		return r.Name == "Quadra 1" && r.Category == domain.CategoryFutsal && len(r.Photos) == 1
	})).Return(nil)

	resp, err := svc.Update(context.Background(), manager, 7, &models.UpdateResourceRequest{
		Category: ptr.Ptr("futsal"),
		Photos:   ptr.Ptr([]string{"photos/1.png"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "futsal", resp.Category)

	_, err = svc.Update(context.Background(), other, 7, &models.UpdateResourceRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc, resources, _ := setupService(t)
	resources.On("GetSummary", mock.Anything, int64(9)).Return(nil, resourceRepo.ErrResourceNotFound)

	_, err := svc.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}
