package merge

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

// MockRepository implements repository.Merge for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListItemsByCategory(ctx context.Context, category domain.Category) ([]domain.Item, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.MergeTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.MergeTx), args.Error(1)
}

// MockTx implements repository.MergeTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) GetItems(ctx context.Context, itemIDs []string) ([]domain.Item, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockTx) ListAllocationsForItems(ctx context.Context, itemIDs []string) ([]domain.Allocation, error) {
	args := m.Called(ctx, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockTx) UpdateItem(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTx) DeleteItemAllocations(ctx context.Context, itemID string) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockTx) InsertAllocation(ctx context.Context, alloc *domain.Allocation) error {
	args := m.Called(ctx, alloc)
	return args.Error(0)
}

func (m *MockTx) DeleteItems(ctx context.Context, itemIDs []string) error {
	args := m.Called(ctx, itemIDs)
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
