package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kalrend/warchest/internal/allocation"
	"github.com/kalrend/warchest/internal/character"
	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/loot"
	"github.com/kalrend/warchest/internal/merge"
	"github.com/kalrend/warchest/internal/warehouse"
)

// MockAllocationService implements allocation.Service for testing
type MockAllocationService struct {
	mock.Mock
}

func (m *MockAllocationService) Set(ctx context.Context, itemID, characterID string, amount float64, mode allocation.Mode) (*domain.ItemView, error) {
	args := m.Called(ctx, itemID, characterID, amount, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemView), args.Error(1)
}

func (m *MockAllocationService) Remove(ctx context.Context, itemID, characterID string) (*domain.ItemView, error) {
	args := m.Called(ctx, itemID, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemView), args.Error(1)
}

// MockMergeService implements merge.Service for testing
type MockMergeService struct {
	mock.Mock
}

func (m *MockMergeService) Merge(ctx context.Context, itemIDs []string, opts merge.Options) (*merge.Result, error) {
	args := m.Called(ctx, itemIDs, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*merge.Result), args.Error(1)
}

func (m *MockMergeService) MergeCurrency(ctx context.Context, names ...string) ([]merge.CurrencyResult, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]merge.CurrencyResult), args.Error(1)
}

// MockWarehouseService implements warehouse.Service for testing
type MockWarehouseService struct {
	mock.Mock
}

func (m *MockWarehouseService) ListItems(ctx context.Context) ([]domain.ItemView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemView), args.Error(1)
}

func (m *MockWarehouseService) GetItem(ctx context.Context, itemID string) (*domain.ItemView, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemView), args.Error(1)
}

func (m *MockWarehouseService) CreateItem(ctx context.Context, req warehouse.CreateItemRequest) (*domain.ItemView, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemView), args.Error(1)
}

func (m *MockWarehouseService) UpdateItem(ctx context.Context, itemID string, req warehouse.UpdateItemRequest) (*domain.ItemView, error) {
	args := m.Called(ctx, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemView), args.Error(1)
}

func (m *MockWarehouseService) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// MockLootService implements loot.Service for testing
type MockLootService struct {
	mock.Mock
}

func (m *MockLootService) Publish(ctx context.Context, event *domain.PublishEvent) (*loot.PublishResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loot.PublishResult), args.Error(1)
}

func (m *MockLootService) AutoAssign(ctx context.Context, req *loot.AutoAssignRequest) ([]loot.Assignment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]loot.Assignment), args.Error(1)
}

func (m *MockLootService) Records(ctx context.Context) ([]domain.LootRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LootRecord), args.Error(1)
}

func (m *MockLootService) UpdateMemo(ctx context.Context, recordID, memo string) error {
	args := m.Called(ctx, recordID, memo)
	return args.Error(0)
}

// MockCharacterService implements character.Service for testing
type MockCharacterService struct {
	mock.Mock
}

func (m *MockCharacterService) List(ctx context.Context) ([]domain.Character, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockCharacterService) Get(ctx context.Context, characterID string) (*domain.Character, error) {
	args := m.Called(ctx, characterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) Create(ctx context.Context, req character.CreateCharacterRequest) (*domain.Character, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) Update(ctx context.Context, characterID string, req character.UpdateCharacterRequest) (*domain.Character, error) {
	args := m.Called(ctx, characterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Character), args.Error(1)
}

func (m *MockCharacterService) Delete(ctx context.Context, characterID string) error {
	args := m.Called(ctx, characterID)
	return args.Error(0)
}
