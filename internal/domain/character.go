package domain

import "time"

// Role is a character's function in the campaign.
type Role string

const (
	RoleGM     Role = "GM"
	RolePlayer Role = "PL"
	RoleOther  Role = "Other"
)

// ValidRole reports whether r is a known character role.
func ValidRole(r Role) bool {
	return r == RoleGM || r == RolePlayer || r == RoleOther
}

// Character is a party member. Names are unique across the campaign.
type Character struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Color        string    `json:"color"`
	PortraitPath *string   `json:"portrait_path,omitempty"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Allocation binds a quantity of one item to one character. At most one
// row exists per (item, character) pair.
type Allocation struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	CharacterID string    `json:"character_id"`
	Quantity    float64   `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
