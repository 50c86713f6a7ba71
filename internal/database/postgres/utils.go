package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kalrend/warchest/internal/domain"
)

const (
	itemColumns = `item_id, name, category, slot, quantity, unit_value, weight,
		description, display_description, created_at, updated_at`
	allocationColumns = `allocation_id, item_id, character_id, quantity, created_at, updated_at`
	characterColumns  = `character_id, name, role, color, portrait_path, notes, created_at, updated_at`
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.Slot, &it.Quantity,
		&it.UnitValue, &it.Weight, &it.Description, &it.DisplayDescription,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}

func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()
	items := []domain.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func scanAllocations(rows pgx.Rows) ([]domain.Allocation, error) {
	defer rows.Close()
	allocs := []domain.Allocation{}
	for rows.Next() {
		var a domain.Allocation
		if err := rows.Scan(&a.ID, &a.ItemID, &a.CharacterID, &a.Quantity,
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		allocs = append(allocs, a)
	}
	return allocs, rows.Err()
}

func scanCharacter(row rowScanner) (*domain.Character, error) {
	var ch domain.Character
	err := row.Scan(&ch.ID, &ch.Name, &ch.Role, &ch.Color, &ch.PortraitPath,
		&ch.Notes, &ch.CreatedAt, &ch.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCharacterNotFound
		}
		return nil, err
	}
	return &ch, nil
}

func scanCharacters(rows pgx.Rows) ([]domain.Character, error) {
	defer rows.Close()
	chars := []domain.Character{}
	for rows.Next() {
		ch, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		chars = append(chars, *ch)
	}
	return chars, rows.Err()
}

// rollbackQuiet wraps pgx.Tx.Rollback so the services' deferred rollback
// after a successful commit does not log an error.
func rollbackQuiet(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
