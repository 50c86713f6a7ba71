package loot

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

// MockRepository implements repository.Loot for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListRecords(ctx context.Context) ([]domain.LootRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LootRecord), args.Error(1)
}

func (m *MockRepository) GetRecord(ctx context.Context, recordID string) (*domain.LootRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LootRecord), args.Error(1)
}

func (m *MockRepository) UpdateRecordMemo(ctx context.Context, recordID, memo string) error {
	args := m.Called(ctx, recordID, memo)
	return args.Error(0)
}

func (m *MockRepository) ListCharactersByRole(ctx context.Context, role domain.Role) ([]domain.Character, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Character), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.LootTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.LootTx), args.Error(1)
}

// MockTx implements repository.LootTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) InsertItem(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockTx) UpdateItemQuantity(ctx context.Context, itemID string, quantity float64) error {
	args := m.Called(ctx, itemID, quantity)
	return args.Error(0)
}

func (m *MockTx) DeleteItem(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockTx) CharacterExists(ctx context.Context, characterID string) (bool, error) {
	args := m.Called(ctx, characterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) InsertAllocation(ctx context.Context, alloc *domain.Allocation) error {
	args := m.Called(ctx, alloc)
	return args.Error(0)
}

func (m *MockTx) ListAllocations(ctx context.Context, itemID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockTx) UpdateAllocationQuantity(ctx context.Context, allocationID string, quantity float64) error {
	args := m.Called(ctx, allocationID, quantity)
	return args.Error(0)
}

func (m *MockTx) DeleteAllocationByID(ctx context.Context, allocationID string) error {
	args := m.Called(ctx, allocationID)
	return args.Error(0)
}

func (m *MockTx) InsertLootRecord(ctx context.Context, record *domain.LootRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTx) InsertTransaction(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
