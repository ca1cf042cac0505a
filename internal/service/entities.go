package service

import (
	"errors"
	"fmt"

	"github.com/tallytrace/finance-service/internal/models"
	"github.com/tallytrace/finance-service/internal/repository"
)

// CreateEntity creates a personal or business book with the user as owner
func (s *Service) CreateEntity(userID int64, entity *models.Entity) error {
	if entity.Name == "" {
		return fmt.Errorf("entity name is required: %w", ErrInvalidInput)
	}
	if entity.EntityType != models.EntityTypePersonal && entity.EntityType != models.EntityTypeBusiness {
		return fmt.Errorf("unknown entity type %q: %w", entity.EntityType, ErrInvalidInput)
	}
	if entity.DefaultCurrency == "" {
		entity.DefaultCurrency = "EUR"
	}
	if err := s.repo.CreateEntityWithOwner(entity, userID); err != nil {
		return err
	}
	s.log.Infof("Entity %d (%s) created by user %d", entity.ID, entity.EntityType, userID)
	return nil
}

// GetEntity returns an entity the user is a member of
func (s *Service) GetEntity(userID, entityID int64) (*models.Entity, error) {
	if err := s.requireEntityAccess(userID, &entityID); err != nil {
		return nil, err
	}
	return s.repo.FindEntityByID(entityID)
}

// ListEntities returns all entities the user belongs to
func (s *Service) ListEntities(userID int64) ([]models.Entity, error) {
	return s.repo.ListEntitiesForUser(userID)
}

// UpdateEntity saves entity changes; only the owner may update
func (s *Service) UpdateEntity(userID int64, entity *models.Entity) error {
	if err := s.requireOwner(userID, entity.ID); err != nil {
		return err
	}
	return s.repo.UpdateEntity(entity)
}

// DeleteEntity soft-deletes an entity; only the owner may delete. Accounts
// and records under the entity survive but drop out of entity-scoped views.
func (s *Service) DeleteEntity(userID, entityID int64) error {
	if err := s.requireOwner(userID, entityID); err != nil {
		return err
	}
	if err := s.repo.DeactivateEntity(entityID); err != nil {
		return err
	}
	s.log.Infof("Entity %d deactivated by user %d", entityID, userID)
	return nil
}

// AddEntityMember adds a user to an entity by email; only the owner may
// invite
func (s *Service) AddEntityMember(userID, entityID int64, memberEmail, role string) (*models.EntityMembership, error) {
	if role != models.MemberRoleOwner && role != models.MemberRoleMember {
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrInvalidInput)
	}
	if err := s.requireOwner(userID, entityID); err != nil {
		return nil, err
	}
	member, err := s.repo.FindUserByEmail(memberEmail)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindMembership(entityID, member.ID); err == nil {
		return nil, fmt.Errorf("user is already a member: %w", ErrInvalidInput)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	membership := &models.EntityMembership{
		UserID:   member.ID,
		EntityID: entityID,
		Role:     role,
	}
	if err := s.repo.AddMembership(membership); err != nil {
		return nil, err
	}
	s.log.Infof("User %d added to entity %d as %s", member.ID, entityID, role)
	return membership, nil
}

// RemoveEntityMember removes a member from an entity; only the owner may
// remove
func (s *Service) RemoveEntityMember(userID, entityID, targetUserID int64) error {
	if err := s.requireOwner(userID, entityID); err != nil {
		return err
	}
	if err := s.repo.RemoveMembership(entityID, targetUserID); err != nil {
		return err
	}
	s.log.Infof("User %d removed from entity %d by user %d", targetUserID, entityID, userID)
	return nil
}

// ListEntityMembers returns the memberships of an entity the user belongs to
func (s *Service) ListEntityMembers(userID, entityID int64) ([]models.EntityMembership, error) {
	if err := s.requireEntityAccess(userID, &entityID); err != nil {
		return nil, err
	}
	return s.repo.ListMemberships(entityID)
}

func (s *Service) requireOwner(userID, entityID int64) error {
	if err := s.requireEntityAccess(userID, &entityID); err != nil {
		return err
	}
	membership, err := s.repo.FindMembership(entityID, userID)
	if err != nil {
		return err
	}
	if membership.Role != models.MemberRoleOwner {
		return fmt.Errorf("owner role required: %w", ErrAccessDenied)
	}
	return nil
}
