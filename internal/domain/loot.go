package domain

import "time"

// PublishMode selects what a publish event does to the warehouse.
type PublishMode string

const (
	// PublishModeLoot creates items and allocations, and records income.
	PublishModeLoot PublishMode = "loot"
	// PublishModeExpense depletes warehouse items and records an expense.
	PublishModeExpense PublishMode = "expense"
)

// ProposedAllocation is one grant inside a publish event.
type ProposedAllocation struct {
	CharacterID string  `json:"character_id"`
	Quantity    float64 `json:"quantity"`
}

// ProposedItem is one item line inside a publish event. WarehouseID is set
// in expense mode to reference an existing item; a blank WarehouseID in
// expense mode is a manual line that only contributes to the ledger entry.
type ProposedItem struct {
	ClientID           string               `json:"client_id,omitempty"`
	WarehouseID        string               `json:"warehouse_id,omitempty"`
	Name               string               `json:"name"`
	Category           Category             `json:"category"`
	Slot               *string              `json:"slot,omitempty"`
	Quantity           float64              `json:"quantity"`
	UnitValue          float64              `json:"unit_value"`
	Weight             float64              `json:"weight"`
	Description        string               `json:"description"`
	DisplayDescription string               `json:"display_description"`
	Allocations        []ProposedAllocation `json:"allocations,omitempty"`
}

// CurrencyGain is a currency line attached to a loot publish.
type CurrencyGain struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// PublishEvent is the input to the publish coordinator.
type PublishEvent struct {
	Mode         PublishMode          `json:"mode"`
	Items        []ProposedItem       `json:"items"`
	Currency     []CurrencyGain       `json:"currency,omitempty"`
	Distribution map[string][]ProposedAllocation `json:"distribution,omitempty"`
	Note         string               `json:"note"`
	Memo         string               `json:"memo"`
}

// LootRecord is an immutable audit snapshot of a loot-mode publish. Only
// the memo may be edited afterwards.
type LootRecord struct {
	ID           string                          `json:"id"`
	Items        []ProposedItem                  `json:"items"`
	Currency     []CurrencyGain                  `json:"currency"`
	Distribution map[string][]ProposedAllocation `json:"distribution"`
	Note         string                          `json:"note"`
	Memo         string                          `json:"memo"`
	CreatedAt    time.Time                       `json:"created_at"`
	UpdatedAt    time.Time                       `json:"updated_at"`
}
