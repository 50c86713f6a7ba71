package allocation

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

// MockWarehouse implements repository.Warehouse for testing
type MockWarehouse struct {
	mock.Mock
}

func (m *MockWarehouse) ListItemViews(ctx context.Context) ([]domain.ItemView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemView), args.Error(1)
}

func (m *MockWarehouse) GetItemView(ctx context.Context, itemID string) (*domain.ItemView, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemView), args.Error(1)
}

func (m *MockWarehouse) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockWarehouse) InsertItem(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWarehouse) UpdateItem(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockWarehouse) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockWarehouse) BeginTx(ctx context.Context) (repository.AllocationTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.AllocationTx), args.Error(1)
}

// MockAllocationTx implements repository.AllocationTx for testing
type MockAllocationTx struct {
	mock.Mock
}

func (m *MockAllocationTx) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockAllocationTx) ListAllocations(ctx context.Context, itemID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockAllocationTx) UpsertAllocation(ctx context.Context, itemID, characterID string, quantity float64) error {
	args := m.Called(ctx, itemID, characterID, quantity)
	return args.Error(0)
}

func (m *MockAllocationTx) DeleteAllocation(ctx context.Context, itemID, characterID string) error {
	args := m.Called(ctx, itemID, characterID)
	return args.Error(0)
}

func (m *MockAllocationTx) DeleteOtherAllocations(ctx context.Context, itemID, keepCharacterID string) error {
	args := m.Called(ctx, itemID, keepCharacterID)
	return args.Error(0)
}

func (m *MockAllocationTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocationTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

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
