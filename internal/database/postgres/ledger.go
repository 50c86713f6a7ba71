package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kalrend/warchest/internal/domain"
	"github.com/kalrend/warchest/internal/repository"
)

type ledgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(db *pgxpool.Pool) repository.Ledger {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, txType *domain.TransactionType) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, tx_type, description, currency_amount,
			item_value, total_value, note, created_at, updated_at
		FROM transactions`
	args := []any{}
	if txType != nil {
		query += ` WHERE tx_type = $1`
		args = append(args, *txType)
	}
	query += ` ORDER BY created_at DESC, transaction_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.Type, &tx.Description, &tx.CurrencyAmount,
			&tx.ItemValue, &tx.TotalValue, &tx.Note, &tx.CreatedAt, &tx.UpdatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (r *ledgerRepository) Summary(ctx context.Context) (*domain.LedgerSummary, error) {
	row := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_value) FILTER (WHERE tx_type = 'income'), 0),
			COALESCE(SUM(total_value) FILTER (WHERE tx_type = 'expense'), 0)
		FROM transactions`)

	var sum domain.LedgerSummary
	if err := row.Scan(&sum.Income, &sum.Expense); err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger: %w", err)
	}
	sum.Net = sum.Income - sum.Expense
	return &sum, nil
}
