package merge

import (
	"strconv"
	"strings"

	"github.com/kalrend/warchest/internal/domain"
)

// normalizeName trims the item name; currency grouping keys on this.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}

// normalizeSlot collapses slot variants that count as the same slot for
// fungibility. Ring slots are interchangeable ("ring", "ring (left)", …).
func normalizeSlot(slot *string) string {
	if slot == nil {
		return ""
	}
	text := strings.TrimSpace(*slot)
	if strings.HasPrefix(strings.ToLower(text), "ring") {
		return "ring"
	}
	return text
}

// signature is the structural identity used to decide fungibility: two
// items merge without conflict iff their signatures are identical.
func signature(item domain.Item) string {
	parts := []string{
		normalizeName(item.Name),
		string(item.Category),
		normalizeSlot(item.Slot),
		strconv.FormatFloat(item.UnitValue, 'g', -1, 64),
		strconv.FormatFloat(item.Weight, 'g', -1, 64),
		strings.TrimSpace(item.Description),
		strings.TrimSpace(item.DisplayDescription),
	}
	return strings.Join(parts, "\x1f")
}
