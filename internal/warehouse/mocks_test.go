package warehouse

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
