package actors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	actorRepo "github.com/m04kA/SMC-VenueBooking/internal/infra/storage/actor"
	"github.com/m04kA/SMC-VenueBooking/internal/service/actors/models"
)

// Service регистрация и профиль пользователей
type Service struct {
	actorRepo ActorRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(actorRepo ActorRepository, logger Logger) *Service {
	return &Service{
		actorRepo: actorRepo,
		logger:    logger,
	}
}

// Register регистрирует менеджера или организатора
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.ActorResponse, error) {
	actor := &domain.Actor{
		Email:    normalizeEmail(req.Email),
		TaxID:    normalizeTaxID(req.TaxID),
		FullName: strings.TrimSpace(req.FullName),
		Role:     domain.Role(strings.ToLower(strings.TrimSpace(req.Role))),
	}
	s.logger.Info("Register: registering %s with role=%s", actor.Email, actor.Role)

	if err := validateActor(actor); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	created, err := s.actorRepo.Create(ctx, actor)
	if err != nil {
		switch {
		case errors.Is(err, actorRepo.ErrEmailTaken):
			s.logger.Warn("Register: email %s already registered", actor.Email)
			return nil, ErrEmailTaken
		case errors.Is(err, actorRepo.ErrTaxIDTaken):
			s.logger.Warn("Register: tax id already registered")
			return nil, ErrTaxIDTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered actor id=%d", created.ID)
	return models.FromDomainActor(created), nil
}

// EmailExists проверяет, занят ли email
func (s *Service) EmailExists(ctx context.Context, email string) (*models.CheckEmailResponse, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	exists, err := s.actorRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("EmailExists: repository error: %v", err)
		return nil, fmt.Errorf("%w: EmailExists - repository error: %v", ErrInternal, err)
	}

	return &models.CheckEmailResponse{Exists: exists}, nil
}

// Get профиль текущего пользователя
func (s *Service) Get(ctx context.Context, actor domain.Actor) (*models.ActorResponse, error) {
	found, err := s.actorRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, actorRepo.ErrActorNotFound) {
			s.logger.Warn("Get: actor id=%d not found", actor.ID)
			return nil, ErrActorNotFound
		}
		s.logger.Error("Get: repository error for actor id=%d: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainActor(found), nil
}
