package repository

import (
	"context"

	"github.com/kalrend/warchest/internal/domain"
)

// Warehouse defines the interface for item persistence and allocation
// views.
type Warehouse interface {
	ListItemViews(ctx context.Context) ([]domain.ItemView, error)
	GetItemView(ctx context.Context, itemID string) (*domain.ItemView, error)
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	InsertItem(ctx context.Context, item *domain.Item) error
	UpdateItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, itemID string) error

	// BeginTx starts a transaction scoped to allocation mutations on a
	// single item.
	BeginTx(ctx context.Context) (AllocationTx, error)
}

// AllocationTx is the transactional surface the allocation mutator needs.
// Allocations are always returned in creation order; "earliest first" is
// the tie-break everywhere quantities are reclaimed.
type AllocationTx interface {
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	ListAllocations(ctx context.Context, itemID string) ([]domain.Allocation, error)
	UpsertAllocation(ctx context.Context, itemID, characterID string, quantity float64) error
	DeleteAllocation(ctx context.Context, itemID, characterID string) error
	// DeleteOtherAllocations removes every allocation on the item except
	// the given character's. Used by takeover mode.
	DeleteOtherAllocations(ctx context.Context, itemID, keepCharacterID string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
