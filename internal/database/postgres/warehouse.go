package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

type warehouseRepository struct {
	db *pgxpool.Pool
}

// NewWarehouseRepository creates a new PostgreSQL warehouse repository
func NewWarehouseRepository(db *pgxpool.Pool) repository.Warehouse {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) ListItemViews(ctx context.Context) ([]domain.ItemView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items
		ORDER BY created_at, item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}

	viewRows, err := r.db.Query(ctx, `
		SELECT a.allocation_id, a.item_id, a.character_id, c.name, c.color, a.quantity
		FROM item_allocations a
		JOIN characters c ON c.character_id = a.character_id
		ORDER BY a.created_at, a.allocation_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	byItem, err := scanAllocationViews(viewRows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocations: %w", err)
	}

	views := make([]domain.ItemView, 0, len(items))
	for _, it := range items {
		views = append(views, buildItemView(it, byItem[it.ID]))
	}
	return views, nil
}

func (r *warehouseRepository) GetItemView(ctx context.Context, itemID string) (*domain.ItemView, error) {
	item, err := r.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	viewRows, err := r.db.Query(ctx, `
		SELECT a.allocation_id, a.item_id, a.character_id, c.name, c.color, a.quantity
		FROM item_allocations a
		JOIN characters c ON c.character_id = a.character_id
		WHERE a.item_id = $1
		ORDER BY a.created_at, a.allocation_id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	byItem, err := scanAllocationViews(viewRows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan allocations: %w", err)
	}

	view := buildItemView(*item, byItem[itemID])
	return &view, nil
}

func (r *warehouseRepository) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE item_id = $1`, itemID)
	return scanItem(row)
}

func (r *warehouseRepository) InsertItem(ctx context.Context, item *domain.Item) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO items (item_id, name, category, slot, quantity, unit_value,
			weight, description, display_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.Name, item.Category, item.Slot, item.Quantity,
		item.UnitValue, item.Weight, item.Description, item.DisplayDescription)
	return err
}

func (r *warehouseRepository) UpdateItem(ctx context.Context, item *domain.Item) error {
	tag, err := r.db.Exec(ctx, `
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

func (r *warehouseRepository) DeleteItem(ctx context.Context, itemID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *warehouseRepository) BeginTx(ctx context.Context) (repository.AllocationTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &allocationTx{tx: tx}, nil
}

type allocationTx struct {
	tx pgx.Tx
}

func (t *allocationTx) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	row := t.tx.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE item_id = $1
		FOR UPDATE`, itemID)
	return scanItem(row)
}

func (t *allocationTx) ListAllocations(ctx context.Context, itemID string) ([]domain.Allocation, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT `+allocationColumns+`
		FROM item_allocations
		WHERE item_id = $1
		ORDER BY created_at, allocation_id`, itemID)
	if err != nil {
		return nil, err
	}
	return scanAllocations(rows)
}

func (t *allocationTx) UpsertAllocation(ctx context.Context, itemID, characterID string, quantity float64) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO item_allocations (item_id, character_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id, character_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()`,
		itemID, characterID, quantity)
	return err
}

func (t *allocationTx) DeleteAllocation(ctx context.Context, itemID, characterID string) error {
	_, err := t.tx.Exec(ctx, `
		DELETE FROM item_allocations
		WHERE item_id = $1 AND character_id = $2`, itemID, characterID)
	return err
}

func (t *allocationTx) DeleteOtherAllocations(ctx context.Context, itemID, keepCharacterID string) error {
	_, err := t.tx.Exec(ctx, `
		DELETE FROM item_allocations
		WHERE item_id = $1 AND character_id <> $2`, itemID, keepCharacterID)
	return err
}

func (t *allocationTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *allocationTx) Rollback(ctx context.Context) error {
	return rollbackQuiet(ctx, t.tx)
}

func scanAllocationViews(rows pgx.Rows) (map[string][]domain.AllocationView, error) {
	defer rows.Close()
	byItem := map[string][]domain.AllocationView{}
	for rows.Next() {
		var itemID string
		var av domain.AllocationView
		if err := rows.Scan(&av.ID, &itemID, &av.CharacterID, &av.CharacterName,
			&av.CharacterColor, &av.Quantity); err != nil {
			return nil, err
		}
		byItem[itemID] = append(byItem[itemID], av)
	}
	return byItem, rows.Err()
}

func buildItemView(item domain.Item, allocs []domain.AllocationView) domain.ItemView {
	if allocs == nil {
		allocs = []domain.AllocationView{}
	}
	var allocated float64
	for _, a := range allocs {
		allocated += a.Quantity
	}
	return domain.ItemView{
		Item:              item,
		Allocations:       allocs,
		AllocatedQuantity: allocated,
		RemainingQuantity: item.Quantity - allocated,
	}
}
