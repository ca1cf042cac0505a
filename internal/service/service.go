package service

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tallytrace/finance-service/internal/config"
	"github.com/tallytrace/finance-service/internal/events"
	"github.com/tallytrace/finance-service/internal/forecast"
	"github.com/tallytrace/finance-service/internal/repository"
	"github.com/tallytrace/finance-service/internal/utils/email"
)

// Service-level error categories, mapped to HTTP statuses by the handlers
var (
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// Service handles business logic
type Service struct {
	repo      *repository.Repository
	engine    *forecast.Engine
	mailer    *email.Sender
	publisher *events.Publisher
	log       *logrus.Logger
	config    *config.Config
}

// NewService initializes a new service. publisher may be nil when event
// publishing is disabled.
func NewService(repo *repository.Repository, engine *forecast.Engine, mailer *email.Sender,
	publisher *events.Publisher, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		mailer:    mailer,
		publisher: publisher,
		log:       log,
		config:    cfg,
	}
}

// requireEntityAccess verifies the user is a member of the entity when an
// entity scope is supplied. A nil entityID means user-wide scope and always
// passes.
func (s *Service) requireEntityAccess(userID int64, entityID *int64) error {
	if entityID == nil {
		return nil
	}
	entity, err := s.repo.FindEntityByID(*entityID)
	if err != nil {
		return err
	}
	if !entity.IsActive {
		return fmt.Errorf("entity: %w", repository.ErrNotFound)
	}
	if _, err := s.repo.FindMembership(entity.ID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("not a member of entity %d: %w", entity.ID, ErrAccessDenied)
		}
		return err
	}
	return nil
}
