package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

// recordSnapshot is the JSONB payload of a loot record. The audit trail
// keeps the full publish input; only note and memo live in columns.
type recordSnapshot struct {
	Items        []domain.ProposedItem                  `json:"items"`
	Currency     []domain.CurrencyGain                  `json:"currency"`
	Distribution map[string][]domain.ProposedAllocation `json:"distribution"`
}

type lootRepository struct {
	db *pgxpool.Pool
}

// NewLootRepository creates a new PostgreSQL loot repository
func NewLootRepository(db *pgxpool.Pool) repository.Loot {
	return &lootRepository{db: db}
}

func (r *lootRepository) ListRecords(ctx context.Context) ([]domain.LootRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT record_id, snapshot, note, memo, created_at, updated_at
		FROM loot_records
		ORDER BY created_at DESC, record_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list loot records: %w", err)
	}
	defer rows.Close()

	records := []domain.LootRecord{}
	for rows.Next() {
		rec, err := scanLootRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *lootRepository) GetRecord(ctx context.Context, recordID string) (*domain.LootRecord, error) {
	row := r.db.QueryRow(ctx, `
		SELECT record_id, snapshot, note, memo, created_at, updated_at
		FROM loot_records
		WHERE record_id = $1`, recordID)
	rec, err := scanLootRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *lootRepository) UpdateRecordMemo(ctx context.Context, recordID, memo string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE loot_records
		SET memo = $2, updated_at = NOW()
		WHERE record_id = $1`, recordID, memo)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *lootRepository) ListCharactersByRole(ctx context.Context, role domain.Role) ([]domain.Character, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+characterColumns+`
		FROM characters
		WHERE role = $1
		ORDER BY created_at, character_id`, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters by role: %w", err)
	}
	return scanCharacters(rows)
}

func (r *lootRepository) BeginTx(ctx context.Context) (repository.LootTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &lootTx{tx: tx}, nil
}

type lootTx struct {
	tx pgx.Tx
}

func (t *lootTx) InsertItem(ctx context.Context, item *domain.Item) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO items (item_id, name, category, slot, quantity, unit_value,
			weight, description, display_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.Name, item.Category, item.Slot, item.Quantity,
		item.UnitValue, item.Weight, item.Description, item.DisplayDescription)
	return err
}

func (t *lootTx) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	row := t.tx.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE item_id = $1
		FOR UPDATE`, itemID)
	return scanItem(row)
}

func (t *lootTx) UpdateItemQuantity(ctx context.Context, itemID string, quantity float64) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE items
		SET quantity = $2, updated_at = NOW()
		WHERE item_id = $1`, itemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (t *lootTx) DeleteItem(ctx context.Context, itemID string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, itemID)
	return err
}

func (t *lootTx) CharacterExists(ctx context.Context, characterID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM characters WHERE character_id = $1)`,
		characterID).Scan(&exists)
	return exists, err
}

func (t *lootTx) InsertAllocation(ctx context.Context, alloc *domain.Allocation) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO item_allocations (item_id, character_id, quantity)
		VALUES ($1, $2, $3)`,
		alloc.ItemID, alloc.CharacterID, alloc.Quantity)
	return err
}

func (t *lootTx) ListAllocations(ctx context.Context, itemID string) ([]domain.Allocation, error) {
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

func (t *lootTx) UpdateAllocationQuantity(ctx context.Context, allocationID string, quantity float64) error {
	_, err := t.tx.Exec(ctx, `
		UPDATE item_allocations
		SET quantity = $2, updated_at = NOW()
		WHERE allocation_id = $1`, allocationID, quantity)
	return err
}

func (t *lootTx) DeleteAllocationByID(ctx context.Context, allocationID string) error {
	_, err := t.tx.Exec(ctx, `
		DELETE FROM item_allocations WHERE allocation_id = $1`, allocationID)
	return err
}

func (t *lootTx) InsertLootRecord(ctx context.Context, record *domain.LootRecord) error {
	snapshot, err := json.Marshal(recordSnapshot{
		Items:        record.Items,
		Currency:     record.Currency,
		Distribution: record.Distribution,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal loot record snapshot: %w", err)
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO loot_records (record_id, snapshot, note, memo)
		VALUES ($1, $2, $3, $4)`,
		record.ID, snapshot, record.Note, record.Memo)
	return err
}

func (t *lootTx) InsertTransaction(ctx context.Context, tx *domain.Transaction) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO transactions (transaction_id, tx_type, description,
			currency_amount, item_value, total_value, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tx.ID, tx.Type, tx.Description, tx.CurrencyAmount, tx.ItemValue,
		tx.TotalValue, tx.Note)
	return err
}

func (t *lootTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *lootTx) Rollback(ctx context.Context) error {
	return rollbackQuiet(ctx, t.tx)
}

func scanLootRecord(row rowScanner) (*domain.LootRecord, error) {
	var rec domain.LootRecord
	var snapshot []byte
	if err := row.Scan(&rec.ID, &snapshot, &rec.Note, &rec.Memo,
		&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	var s recordSnapshot
	if err := json.Unmarshal(snapshot, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal loot record snapshot: %w", err)
	}
	rec.Items = s.Items
	rec.Currency = s.Currency
	rec.Distribution = s.Distribution
	return &rec, nil
}
