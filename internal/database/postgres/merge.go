package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

type mergeRepository struct {
	db *pgxpool.Pool
}

// NewMergeRepository creates a new PostgreSQL merge repository
func NewMergeRepository(db *pgxpool.Pool) repository.Merge {
	return &mergeRepository{db: db}
}

func (r *mergeRepository) ListItemsByCategory(ctx context.Context, category domain.Category) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE category = $1
		ORDER BY created_at, item_id`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list items by category: %w", err)
	}
	return scanItems(rows)
}

func (r *mergeRepository) BeginTx(ctx context.Context) (repository.MergeTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &mergeTx{tx: tx}, nil
}

type mergeTx struct {
	tx pgx.Tx
}

func (t *mergeTx) GetItems(ctx context.Context, itemIDs []string) ([]domain.Item, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE item_id = ANY($1)
		ORDER BY created_at, item_id
		FOR UPDATE`, itemIDs)
	if err != nil {
		return nil, err
	}
	return scanItems(rows)
}

func (t *mergeTx) ListAllocationsForItems(ctx context.Context, itemIDs []string) ([]domain.Allocation, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT `+allocationColumns+`
		FROM item_allocations
		WHERE item_id = ANY($1)
		ORDER BY created_at, allocation_id`, itemIDs)
	if err != nil {
		return nil, err
	}
	return scanAllocations(rows)
}

func (t *mergeTx) UpdateItem(ctx context.Context, item *domain.Item) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE items
		SET name = $2, category = $3, slot = $4, quantity = $5, unit_value = $6,
			weight = $7, description = $8, display_description = $9, updated_at = NOW()
		WHERE item_id = $1`,
		item.ID, item.Name, item.Category, item.Slot, item.Quantity,
		item.UnitValue, item.Weight, item.Description, item.DisplayDescription)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (t *mergeTx) DeleteItemAllocations(ctx context.Context, itemID string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM item_allocations WHERE item_id = $1`, itemID)
	return err
}

func (t *mergeTx) InsertAllocation(ctx context.Context, alloc *domain.Allocation) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO item_allocations (item_id, character_id, quantity)
		VALUES ($1, $2, $3)`,
		alloc.ItemID, alloc.CharacterID, alloc.Quantity)
	return err
}

func (t *mergeTx) DeleteItems(ctx context.Context, itemIDs []string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM items WHERE item_id = ANY($1)`, itemIDs)
	return err
}

func (t *mergeTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *mergeTx) Rollback(ctx context.Context) error {
	return rollbackQuiet(ctx, t.tx)
}
