package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

type characterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a new PostgreSQL character repository
func NewCharacterRepository(db *pgxpool.Pool) repository.Character {
	return &characterRepository{db: db}
}

func (r *characterRepository) ListCharacters(ctx context.Context) ([]domain.Character, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+characterColumns+`
		FROM characters
		ORDER BY created_at, character_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return scanCharacters(rows)
}

func (r *characterRepository) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+characterColumns+`
		FROM characters
		WHERE character_id = $1`, characterID)
	return scanCharacter(row)
}

func (r *characterRepository) GetCharacterByName(ctx context.Context, name string) (*domain.Character, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+characterColumns+`
		FROM characters
		WHERE name = $1`, name)
	return scanCharacter(row)
}

func (r *characterRepository) InsertCharacter(ctx context.Context, character *domain.Character) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO characters (character_id, name, role, color, portrait_path, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		character.ID, character.Name, character.Role, character.Color,
		character.PortraitPath, character.Notes)
	return err
}

func (r *characterRepository) UpdateCharacter(ctx context.Context, character *domain.Character) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE characters
		SET name = $2, role = $3, color = $4, portrait_path = $5, notes = $6,
			updated_at = NOW()
		WHERE character_id = $1`,
		character.ID, character.Name, character.Role, character.Color,
		character.PortraitPath, character.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}

func (r *characterRepository) DeleteCharacter(ctx context.Context, characterID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM characters WHERE character_id = $1`, characterID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCharacterNotFound
	}
	return nil
}
