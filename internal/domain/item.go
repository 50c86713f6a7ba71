package domain

import "time"

// Category classifies a warehouse item.
type Category string

// Item categories. Slot is only meaningful for CategoryEquipment.
const (
	CategoryEquipment Category = "equipment"
	CategoryPotion    Category = "potion"
	CategoryScroll    Category = "scroll"
	CategoryCurrency  Category = "currency"
	CategoryOther     Category = "other"
)

// ValidCategory reports whether c is one of the known item categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryEquipment, CategoryPotion, CategoryScroll, CategoryCurrency, CategoryOther:
		return true
	}
	return false
}

// Item is a warehouse item. Quantity is a count that may be fractional
// (partial rations, coin pouches); UnitValue and Weight are per unit.
type Item struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Category           Category  `json:"category"`
	Slot               *string   `json:"slot,omitempty"`
	Quantity           float64   `json:"quantity"`
	UnitValue          float64   `json:"unit_value"`
	Weight             float64   `json:"weight"`
	Description        string    `json:"description"`
	DisplayDescription string    `json:"display_description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// AllocationView is one character's share of an item, joined with the
// character's display attributes.
type AllocationView struct {
	ID             string  `json:"id"`
	CharacterID    string  `json:"character_id"`
	CharacterName  string  `json:"character_name"`
	CharacterColor string  `json:"character_color"`
	Quantity       float64 `json:"quantity"`
}

// ItemView is an item together with its full allocation breakdown.
type ItemView struct {
	Item
	Allocations       []AllocationView `json:"allocations"`
	AllocatedQuantity float64          `json:"allocated_quantity"`
	RemainingQuantity float64          `json:"remaining_quantity"`
}
