// Package ledger exposes the campaign transaction history and its totals.
package ledger

import (
	"context"
	"fmt"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

// Service defines the interface for browsing the transaction ledger.
type Service interface {
	// Transactions lists ledger entries newest first. typeFilter narrows
	// to one transaction type when non-empty.
	Transactions(ctx context.Context, typeFilter string) ([]domain.Transaction, error)
	Summary(ctx context.Context) (*domain.LedgerSummary, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

func (s *service) Transactions(ctx context.Context, typeFilter string) ([]domain.Transaction, error) {
	if typeFilter == "" {
		return s.repo.ListTransactions(ctx, nil)
	}
	txType := domain.TransactionType(typeFilter)
	if txType != domain.TransactionIncome && txType != domain.TransactionExpense {
		return nil, fmt.Errorf("%w: transaction type %q", domain.ErrInvalidInput, typeFilter)
	}
	return s.repo.ListTransactions(ctx, &txType)
}

func (s *service) Summary(ctx context.Context) (*domain.LedgerSummary, error) {
	return s.repo.Summary(ctx)
}
