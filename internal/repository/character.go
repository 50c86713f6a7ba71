package repository

import (
	"context"

	"github.com/kalrend/warchest/internal/domain"
)

// Character defines the interface for character persistence.
type Character interface {
	ListCharacters(ctx context.Context) ([]domain.Character, error)
	GetCharacter(ctx context.Context, characterID string) (*domain.Character, error)
	GetCharacterByName(ctx context.Context, name string) (*domain.Character, error)
	InsertCharacter(ctx context.Context, character *domain.Character) error
	UpdateCharacter(ctx context.Context, character *domain.Character) error
	// DeleteCharacter removes the character; allocation rows cascade.
	DeleteCharacter(ctx context.Context, characterID string) error
}

// Ledger defines the interface for the transaction ledger.
type Ledger interface {
	ListTransactions(ctx context.Context, txType *domain.TransactionType) ([]domain.Transaction, error)
	Summary(ctx context.Context) (*domain.LedgerSummary, error)
}
