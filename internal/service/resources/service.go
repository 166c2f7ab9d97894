package resources

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBooking/internal/authz"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	resourceRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/resource"
	venueRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBooking/internal/service/resources/models"
)

// Service сервис пространств (корты, поля, бассейны) центров
type Service struct {
	resourceRepo ResourceRepository
	venueRepo    VenueRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса пространств
func NewService(resourceRepo ResourceRepository, venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		venueRepo:    venueRepo,
		logger:       logger,
	}
}

// Create создает пространство в центре менеджера
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Create: actor=%d creates resource %q in venue=%d", actor.ID, req.Name, req.VenueID)

	// 1. Валидируем входные данные
	resource := &domain.Resource{
		VenueID:      req.VenueID,
		Name:         strings.TrimSpace(req.Name),
		Category:     domain.Category(strings.ToLower(strings.TrimSpace(req.Category))),
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
		Photos:       req.Photos,
	}
	if err := validateResource(resource); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права на центр
	venue, err := s.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("Create: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Create: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Create - get venue: %v", ErrInternal, err)
	}
	if err := authz.Require(actor, authz.ManagerOf(venue.ManagerID)); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, ErrAccessDenied
	}

	// 3. Создаем пространство
	created, err := s.resourceRepo.Create(ctx, resource)
	if err != nil {
		return nil, s.mapWriteError("Create", err)
	}

	s.logger.Info("Create: successfully created resource id=%d", created.ID)
	return models.FromDomainResource(created), nil
}

// Update обновляет пространство. Доступно только менеджеру центра.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateResourceRequest) (*models.ResourceResponse, error) {
	s.logger.Info("Update: actor=%d updates resource id=%d", actor.ID, id)

	summary, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	resource := summary.Resource
	if req.Name != nil {
		resource.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		resource.Category = domain.Category(strings.ToLower(strings.TrimSpace(*req.Category)))
	}
	if req.ProfileImage != nil {
		resource.ProfileImage = req.ProfileImage
	}
	if req.CoverImage != nil {
		resource.CoverImage = req.CoverImage
	}
	if req.Photos != nil {
		resource.Photos = *req.Photos
	}

	if err := validateResource(&resource); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.resourceRepo.Update(ctx, &resource); err != nil {
		return nil, s.mapWriteError("Update", err)
	}

	summary.Resource = resource
	return models.FromDomainSummary(summary), nil
}

// Delete удаляет пространство со слотами и бронированиями
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: actor=%d deletes resource id=%d", actor.ID, id)

	if _, err := s.getOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.resourceRepo.Delete(ctx, id); err != nil {
		return s.mapWriteError("Delete", err)
	}

	s.logger.Info("Delete: successfully deleted resource id=%d", id)
	return nil
}

// GetByID пространство с центром, минимальной ценой открытого слота и числом оценок
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ResourceResponse, error) {
	summary, err := s.getSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSummary(summary), nil
}

// List список пространств с фильтрами
func (s *Service) List(ctx context.Context, req *models.ListResourcesRequest) (*models.ResourceListResponse, error) {
	filter := domain.ResourceFilter{VenueID: req.VenueID}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		name := strings.TrimSpace(*req.Name)
		filter.Name = &name
	}
	if req.Category != nil {
		category := domain.Category(strings.ToLower(strings.TrimSpace(*req.Category)))
		if !category.IsValid() {
			s.logger.Warn("List: unknown category %q", *req.Category)
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		filter.Category = &category
	}

	list, err := s.resourceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSummaries(list), nil
}

func (s *Service) getSummary(ctx context.Context, id int64) (*domain.ResourceSummary, error) {
	summary, err := s.resourceRepo.GetSummary(ctx, id)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			s.logger.Warn("resource id=%d not found", id)
			return nil, ErrResourceNotFound
		}
		s.logger.Error("failed to get resource id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get resource: %v", ErrInternal, err)
	}
	return summary, nil
}

func (s *Service) getOwned(ctx context.Context, actor domain.Actor, id int64) (*domain.ResourceSummary, error) {
	summary, err := s.getSummary(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Require(actor, authz.ManagerOf(summary.Venue.ManagerID)); err != nil {
		s.logger.Warn("%v", err)
		return nil, ErrAccessDenied
	}
	return summary, nil
}

func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, resourceRepo.ErrResourceAlreadyExists):
		s.logger.Warn("%s: %v", op, err)
		return ErrResourceAlreadyExists
	case errors.Is(err, resourceRepo.ErrResourceNotFound):
		return ErrResourceNotFound
	case errors.Is(err, resourceRepo.ErrVenueNotFound):
		return ErrVenueNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateResource(r *domain.Resource) error {
	if r.VenueID <= 0 {
		return fmt.Errorf("%w: venueId must be positive", ErrInvalidInput)
	}
	if r.Name == "" || utf8.RuneCountInString(r.Name) > domain.MaxResourceNameLength {
		return fmt.Errorf("%w: name is required and must be at most %d characters", ErrInvalidInput, domain.MaxResourceNameLength)
	}
	if !r.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, r.Category)
	}
	return nil
}
