// Package character manages the party roster. Names are unique; reads by
// id go through a small LRU cache because allocation views resolve the
// same handful of characters on every request.
package character

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/logger"
	"github.com/kalrend/warchest/internal/repository"
)

const cacheSize = 128

// CreateCharacterRequest carries the attributes of a new party member.
type CreateCharacterRequest struct {
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
	Color string      `json:"color"`
	Notes string      `json:"notes"`
}

// UpdateCharacterRequest carries a full replacement of a character's
// attributes.
type UpdateCharacterRequest = CreateCharacterRequest

// Service defines the interface for character management.
type Service interface {
	List(ctx context.Context) ([]domain.Character, error)
	Get(ctx context.Context, characterID string) (*domain.Character, error)
	Create(ctx context.Context, req CreateCharacterRequest) (*domain.Character, error)
	Update(ctx context.Context, characterID string, req UpdateCharacterRequest) (*domain.Character, error)
	Delete(ctx context.Context, characterID string) error
}

type service struct {
	repo  repository.Character
	cache *lru.Cache[string, *domain.Character]
}

// NewService creates a new character service
func NewService(repo repository.Character) (Service, error) {
	cache, err := lru.New[string, *domain.Character](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create character cache: %w", err)
	}
	return &service{repo: repo, cache: cache}, nil
}

func (s *service) List(ctx context.Context) ([]domain.Character, error) {
	return s.repo.ListCharacters(ctx)
}

func (s *service) Get(ctx context.Context, characterID string) (*domain.Character, error) {
	if ch, ok := s.cache.Get(characterID); ok {
		return ch, nil
	}
	ch, err := s.repo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	s.cache.Add(characterID, ch)
	return ch, nil
}

// Create inserts a new character after checking the name is unused.
func (s *service) Create(ctx context.Context, req CreateCharacterRequest) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if err := validateCharacterRequest(name, req.Role); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, ""); err != nil {
		return nil, err
	}

	ch := &domain.Character{
		ID:    uuid.NewString(),
		Name:  name,
		Role:  req.Role,
		Color: req.Color,
		Notes: req.Notes,
	}
	if err := s.repo.InsertCharacter(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to insert character: %w", err)
	}

	log.Info("Character created", "character_id", ch.ID, "name", ch.Name, "role", ch.Role)
	return s.repo.GetCharacter(ctx, ch.ID)
}

// Update replaces the character's attributes and drops the cached entry.
func (s *service) Update(ctx context.Context, characterID string, req UpdateCharacterRequest) (*domain.Character, error) {
	log := logger.FromContext(ctx)

	name := strings.TrimSpace(req.Name)
	if err := validateCharacterRequest(name, req.Role); err != nil {
		return nil, err
	}

	ch, err := s.repo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, characterID); err != nil {
		return nil, err
	}

	ch.Name = name
	ch.Role = req.Role
	ch.Color = req.Color
	ch.Notes = req.Notes

	if err := s.repo.UpdateCharacter(ctx, ch); err != nil {
		return nil, fmt.Errorf("failed to update character: %w", err)
	}
	s.cache.Remove(characterID)

	log.Info("Character updated", "character_id", characterID, "name", name)
	return s.repo.GetCharacter(ctx, characterID)
}

// Delete removes the character; allocation rows cascade.
func (s *service) Delete(ctx context.Context, characterID string) error {
	log := logger.FromContext(ctx)

	if _, err := s.repo.GetCharacter(ctx, characterID); err != nil {
		return err
	}
	if err := s.repo.DeleteCharacter(ctx, characterID); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	s.cache.Remove(characterID)

	log.Info("Character deleted", "character_id", characterID)
	return nil
}

func (s *service) checkNameFree(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.GetCharacterByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrCharacterNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check character name: %w", err)
	}
	if existing.ID == selfID {
		return nil
	}
	return fmt.Errorf("%w: %q", domain.ErrDuplicateName, name)
}

func validateCharacterRequest(name string, role domain.Role) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(role) {
		return fmt.Errorf("%w: role %q", domain.ErrInvalidInput, role)
	}
	return nil
}
