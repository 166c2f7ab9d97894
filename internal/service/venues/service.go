package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-VenueBooking/internal/authz"
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	venueRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/venue"
	"github.com/m04kA/SMC-VenueBooking/internal/service/venues/models"
)

// Service каталог спортивных центров
type Service struct {
	venueRepo    VenueRepository
	resourceRepo ResourceRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса центров
func NewService(venueRepo VenueRepository, resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		venueRepo:    venueRepo,
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// Create создает центр. Менеджером центра становится автор запроса.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Create: manager=%d creates venue %q in %s/%s", actor.ID, req.Name, req.City, req.Region)

	if err := authz.Require(actor, authz.IsManager()); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, ErrAccessDenied
	}

	venue := &domain.Venue{
		ManagerID:    actor.ID,
		Name:         req.Name,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		City:         req.City,
		Region:       req.Region,
		ProfileImage: req.ProfileImage,
		CoverImage:   req.CoverImage,
	}
	normalize(venue)
	if err := validateVenue(venue); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.venueRepo.Create(ctx, venue)
	if err != nil {
		switch {
		case errors.Is(err, venueRepo.ErrVenueAlreadyExists):
			s.logger.Warn("Create: venue %q already exists in %s/%s", venue.Name, venue.City, venue.Region)
			return nil, ErrVenueAlreadyExists
		case errors.Is(err, venueRepo.ErrManagerNotFound):
			s.logger.Warn("Create: manager=%d is not registered", actor.ID)
			return nil, ErrManagerNotFound
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created venue id=%d", created.ID)
	return models.FromDomainVenue(created), nil
}

// Update обновляет центр. Доступно только менеджеру центра.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Update: actor=%d updates venue id=%d", actor.ID, id)

	venue, err := s.getOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Description != nil {
		venue.Description = *req.Description
	}
	if req.Latitude != nil {
		venue.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		venue.Longitude = *req.Longitude
	}
	if req.City != nil {
		venue.City = *req.City
	}
	if req.Region != nil {
		venue.Region = *req.Region
	}
	if req.ProfileImage != nil {
		venue.ProfileImage = req.ProfileImage
	}
	if req.CoverImage != nil {
		venue.CoverImage = req.CoverImage
	}

	normalize(venue)
	if err := validateVenue(venue); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		switch {
		case errors.Is(err, venueRepo.ErrVenueAlreadyExists):
			s.logger.Warn("Update: venue %q already exists in %s/%s", venue.Name, venue.City, venue.Region)
			return nil, ErrVenueAlreadyExists
		case errors.Is(err, venueRepo.ErrVenueNotFound):
			return nil, ErrVenueNotFound
		case errors.Is(err, venueRepo.ErrManagerNotFound):
			s.logger.Warn("Update: manager=%d is not registered", venue.ManagerID)
			return nil, ErrManagerNotFound
		}
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated venue id=%d", id)
	return models.FromDomainVenue(venue), nil
}

// Delete удаляет центр со всеми пространствами, слотами и бронированиями
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: actor=%d deletes venue id=%d", actor.ID, id)

	if _, err := s.getOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.venueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted venue id=%d", id)
	return nil
}

// GetByID карточка центра с пространствами, минимальной ценой и числом оценок
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VenueDetailsResponse, error) {
	summary, err := s.venueRepo.GetSummary(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetByID: venue id=%d not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetByID: repository error for venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resources, err := s.resourceRepo.List(ctx, domain.ResourceFilter{VenueID: &id})
	if err != nil {
		s.logger.Error("GetByID: failed to list resources of venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - list resources: %v", ErrInternal, err)
	}

	return models.FromDomainDetails(summary, resources), nil
}

// Search поиск центров по имени, городу, региону и категории пространств
func (s *Service) Search(ctx context.Context, req *models.SearchVenuesRequest) (*models.VenueListResponse, error) {
	filter := domain.VenueFilter{
		Name: trimmed(req.Name),
		City: trimmed(req.City),
	}
	if region := trimmed(req.Region); region != nil {
		upper := strings.ToUpper(*region)
		filter.Region = &upper
	}
	if category := trimmed(req.Category); category != nil {
		c := domain.Category(strings.ToLower(*category))
		if !c.IsValid() {
			s.logger.Warn("Search: unknown category %q", *category)
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *category)
		}
		filter.Category = &c
	}

	list, err := s.venueRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSummaries(list), nil
}

// ListMine центры текущего менеджера
func (s *Service) ListMine(ctx context.Context, actor domain.Actor) (*models.VenueListResponse, error) {
	if err := authz.Require(actor, authz.IsManager()); err != nil {
		s.logger.Warn("ListMine: %v", err)
		return nil, ErrAccessDenied
	}

	list, err := s.venueRepo.List(ctx, domain.VenueFilter{ManagerID: &actor.ID})
	if err != nil {
		s.logger.Error("ListMine: repository error for manager=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSummaries(list), nil
}

func (s *Service) getOwned(ctx context.Context, actor domain.Actor, id int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("venue id=%d not found", id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("failed to get venue id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get venue: %v", ErrInternal, err)
	}

	if err := authz.Require(actor, authz.ManagerOf(venue.ManagerID)); err != nil {
		s.logger.Warn("%v", err)
		return nil, ErrAccessDenied
	}
	return venue, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
