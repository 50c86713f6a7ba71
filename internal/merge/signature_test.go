package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kalrend/warchest/internal/domain"
)

func TestSignatureIgnoresWhitespace(t *testing.T) {
	a := domain.Item{Name: "Gold Piece", Category: domain.CategoryCurrency, Description: "shiny"}
	b := domain.Item{Name: "  Gold Piece ", Category: domain.CategoryCurrency, Description: " shiny "}

	assert.Equal(t, signature(a), signature(b))
}

func TestSignatureDistinguishesAttributes(t *testing.T) {
	a := domain.Item{Name: "Gold Piece", Category: domain.CategoryCurrency, UnitValue: 1}
	b := a
	b.UnitValue = 2

	assert.NotEqual(t, signature(a), signature(b))
}

func TestSignatureCollapsesRingSlots(t *testing.T) {
	left := "Ring (left)"
	right := "ring"
	a := domain.Item{Name: "Band of Vigor", Category: domain.CategoryEquipment, Slot: &left}
	b := domain.Item{Name: "Band of Vigor", Category: domain.CategoryEquipment, Slot: &right}

	assert.Equal(t, signature(a), signature(b))
}
