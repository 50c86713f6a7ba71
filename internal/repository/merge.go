package repository

import (
	"context"

	"github.com/kalrend/warchest/internal/domain"
)

// Merge defines the interface for the merge resolver's persistence.
type Merge interface {
	// ListItemsByCategory returns items of one category ordered by
	// creation time, oldest first.
	ListItemsByCategory(ctx context.Context, category domain.Category) ([]domain.Item, error)

	BeginTx(ctx context.Context) (MergeTx, error)
}

// MergeTx is the transactional surface for consolidating items.
type MergeTx interface {
	// GetItems returns the items for the given ids; missing ids are
	// simply absent from the result.
	GetItems(ctx context.Context, itemIDs []string) ([]domain.Item, error)
	// ListAllocationsForItems returns all allocations on the given items
	// in creation order.
	ListAllocationsForItems(ctx context.Context, itemIDs []string) ([]domain.Allocation, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	DeleteItemAllocations(ctx context.Context, itemID string) error
	InsertAllocation(ctx context.Context, alloc *domain.Allocation) error
	DeleteItems(ctx context.Context, itemIDs []string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
