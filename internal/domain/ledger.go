package domain

import "time"

// TransactionType distinguishes ledger entries.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is one ledger entry. TotalValue is always
// CurrencyAmount + ItemValue; the repository stores the derived value so
// summaries stay a single aggregate query.
type Transaction struct {
	ID             string          `json:"id"`
	Type           TransactionType `json:"type"`
	Description    string          `json:"description"`
	CurrencyAmount float64         `json:"currency_amount"`
	ItemValue      float64         `json:"item_value"`
	TotalValue     float64         `json:"total_value"`
	Note           string          `json:"note"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// LedgerSummary aggregates the ledger for the dashboard.
type LedgerSummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}
