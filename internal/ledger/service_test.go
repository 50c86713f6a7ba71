package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kalrend/warchest/internal/domain"
)

// MockLedger implements repository.Ledger for testing
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) ListTransactions(ctx context.Context, txType *domain.TransactionType) ([]domain.Transaction, error) {
	args := m.Called(ctx, txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedger) Summary(ctx context.Context) (*domain.LedgerSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSummary), args.Error(1)
}

func TestTransactionsNoFilter(t *testing.T) {
	repo := new(MockLedger)
	svc := NewService(repo)

	repo.On("ListTransactions", mock.Anything, (*domain.TransactionType)(nil)).
		Return([]domain.Transaction{{ID: "tx-1"}}, nil)

	txs, err := svc.Transactions(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestTransactionsFilterByType(t *testing.T) {
	repo := new(MockLedger)
	svc := NewService(repo)

	income := domain.TransactionIncome
	repo.On("ListTransactions", mock.Anything, &income).
		Return([]domain.Transaction{{ID: "tx-1", Type: income}}, nil)

	txs, err := svc.Transactions(context.Background(), "income")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, income, txs[0].Type)
}

func TestTransactionsRejectsUnknownType(t *testing.T) {
	repo := new(MockLedger)
	svc := NewService(repo)

	_, err := svc.Transactions(context.Background(), "refund")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything)
}

func TestSummary(t *testing.T) {
	repo := new(MockLedger)
	svc := NewService(repo)

	repo.On("Summary", mock.Anything).
		Return(&domain.LedgerSummary{Income: 500, Expense: 120, Net: 380}, nil)

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 380, sum.Net, 1e-9)
}
