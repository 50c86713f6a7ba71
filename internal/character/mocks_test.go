package character

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kalrend/warchest/internal/domain"
)

// MockCharacters implements repository.Character for testing
type MockCharacters struct {
	mock.Mock
}

func (m *MockCharacters) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacters) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacters) GetCharacterByName(ctx context.Context, name string) (*domain.Character, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacters) InsertCharacter(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacters) UpdateCharacter(ctx context.Context, character *domain.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *MockCharacters) DeleteCharacter(ctx context.Context, characterID string) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}
