package repository

import (
	"context"

	"github.com/kalrend/warchest/internal/domain"
)

// Loot defines the interface for the publish coordinator's persistence.
type Loot interface {
	ListRecords(ctx context.Context) ([]domain.LootRecord, error)
	GetRecord(ctx context.Context, recordID string) (*domain.LootRecord, error)
	UpdateRecordMemo(ctx context.Context, recordID, memo string) error
	// ListCharactersByRole returns characters with the given role ordered
	// by creation time, oldest first. Auto-assign targets players.
	ListCharactersByRole(ctx context.Context, role domain.Role) ([]domain.Character, error)

	BeginTx(ctx context.Context) (LootTx, error)
}

// LootTx is the transactional surface of one publish event. Every write
// of a publish happens through one LootTx so the event commits or rolls
// back as a unit.
type LootTx interface {
	InsertItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, itemID string) (*domain.Item, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity float64) error
	DeleteItem(ctx context.Context, itemID string) error

	CharacterExists(ctx context.Context, characterID string) (bool, error)
	InsertAllocation(ctx context.Context, alloc *domain.Allocation) error
	ListAllocations(ctx context.Context, itemID string) ([]domain.Allocation, error)
	UpdateAllocationQuantity(ctx context.Context, allocationID string, quantity float64) error
	DeleteAllocationByID(ctx context.Context, allocationID string) error

	InsertLootRecord(ctx context.Context, record *domain.LootRecord) error
	InsertTransaction(ctx context.Context, tx *domain.Transaction) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
