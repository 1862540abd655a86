package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestStockItemStockStatus(t *testing.T) {
	cases := []struct {
		name string
		item StockItem
		want StockStatus
	}{
		{"zero stock", StockItem{CurrentStock: 0, MinimumStock: 5}, StockStatusOutOfStock},
		{"at minimum", StockItem{CurrentStock: 5, MinimumStock: 5}, StockStatusLowStock},
		{"below minimum", StockItem{CurrentStock: 3, MinimumStock: 5}, StockStatusLowStock},
		{"healthy", StockItem{CurrentStock: 20, MinimumStock: 5}, StockStatusInStock},
		{"above maximum", StockItem{CurrentStock: 120, MinimumStock: 5, MaximumStock: intPtr(100)}, StockStatusOverstock},
		{"at maximum", StockItem{CurrentStock: 100, MinimumStock: 5, MaximumStock: intPtr(100)}, StockStatusInStock},
		{"no maximum set", StockItem{CurrentStock: 1000, MinimumStock: 5}, StockStatusInStock},
		{"zero wins over minimum", StockItem{CurrentStock: 0, MinimumStock: 0}, StockStatusOutOfStock},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.item.StockStatus())
		})
	}
}

func TestStockItemNeedsReorder(t *testing.T) {
	item := StockItem{CurrentStock: 12, MinimumStock: 5, ReorderPoint: intPtr(15)}
	assert.True(t, item.NeedsReorder())

	item.ReorderPoint = intPtr(10)
	assert.False(t, item.NeedsReorder())

	// Without a reorder point the minimum threshold is the trigger.
	item.ReorderPoint = nil
	assert.False(t, item.NeedsReorder())
	item.CurrentStock = 5
	assert.True(t, item.NeedsReorder())
}

func TestItemCategoryValid(t *testing.T) {
	for _, c := range []ItemCategory{
		CategoryEquipment, CategoryConsumable, CategorySparePart,
		CategoryRawMaterial, CategoryPackaging, CategoryOther,
	} {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, ItemCategory("gadget").Valid())
	assert.False(t, ItemCategory("").Valid())
}
