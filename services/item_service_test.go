package services

import (
	"context"
	"testing"

	"inventory-app/models"
	"inventory-app/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemFixture() (*memoryStockStore, *ItemService) {
	store := newMemoryStockStore()
	return store, NewItemService(store, NewStockService(store))
}

func TestItemCreate(t *testing.T) {
	store, svc := newItemFixture()

	item, err := svc.Create(context.Background(), CreateItemInput{
		PartNumber:   "BRG-6204",
		Name:         "Ball Bearing 6204",
		Category:     models.CategorySparePart,
		Uom:          "PCS",
		CostPrice:    decimal.NewFromFloat(3.20),
		SellingPrice: decimal.NewFromFloat(5.50),
		MinimumStock: 10,
		CreatedBy:    "admin",
	})
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "BRG-6204", item.PartNumber)
	assert.Equal(t, 0, item.CurrentStock)
	assert.True(t, item.IsActive)
	assert.Empty(t, store.entriesForItem(item.ID))
}

func TestItemCreateWithInitialCount(t *testing.T) {
	store, svc := newItemFixture()

	item, err := svc.Create(context.Background(), CreateItemInput{
		PartNumber:   "BRG-6205",
		Name:         "Ball Bearing 6205",
		InitialCount: 40,
		CreatedBy:    "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 40, item.CurrentStock)
	assert.Equal(t, models.CategoryOther, item.Category)

	// The opening balance is a real ledger entry, not a silent write.
	entries := store.entriesForItem(item.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MovementAdjustment, entries[0].Type)
	assert.Equal(t, 40, entries[0].QuantityDelta)
	assert.Equal(t, 0, entries[0].PreviousQuantity)
	assert.Equal(t, "initial count", entries[0].Reason)
	assert.Equal(t, "admin", entries[0].PerformedBy)
}

func TestItemCreateValidation(t *testing.T) {
	_, svc := newItemFixture()
	ctx := context.Background()
	maxTen := 10

	cases := []struct {
		name string
		in   CreateItemInput
	}{
		{"missing part number", CreateItemInput{Name: "X", CreatedBy: "admin"}},
		{"missing name", CreateItemInput{PartNumber: "X-1", CreatedBy: "admin"}},
		{"bad category", CreateItemInput{PartNumber: "X-1", Name: "X", Category: "gadget", CreatedBy: "admin"}},
		{"negative price", CreateItemInput{PartNumber: "X-1", Name: "X", CostPrice: decimal.NewFromInt(-1), CreatedBy: "admin"}},
		{"negative minimum", CreateItemInput{PartNumber: "X-1", Name: "X", MinimumStock: -1, CreatedBy: "admin"}},
		{"maximum below minimum", CreateItemInput{PartNumber: "X-1", Name: "X", MinimumStock: 20, MaximumStock: &maxTen, CreatedBy: "admin"}},
		{"negative initial count", CreateItemInput{PartNumber: "X-1", Name: "X", InitialCount: -5, CreatedBy: "admin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestItemCreateDuplicatePartNumber(t *testing.T) {
	_, svc := newItemFixture()
	ctx := context.Background()

	in := CreateItemInput{PartNumber: "BRG-6204", Name: "Ball Bearing", CreatedBy: "admin"}
	_, err := svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = svc.Create(ctx, in)
	assert.True(t, IsValidation(err))
}

func TestItemUpdateLeavesStockAlone(t *testing.T) {
	store, svc := newItemFixture()
	seeded := newTestItem(1, 30)
	store.putItem(seeded)

	name := "Renamed Part"
	price := decimal.NewFromFloat(4.10)
	minimum := 8
	item, err := svc.Update(context.Background(), seeded.ID, UpdateItemInput{
		Name:         &name,
		CostPrice:    &price,
		MinimumStock: &minimum,
		UpdatedBy:    "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Part", item.Name)
	assert.True(t, item.CostPrice.Equal(price))
	assert.Equal(t, 8, item.MinimumStock)

	stored, err := store.GetItem(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.CurrentStock)
	assert.Empty(t, store.entriesForItem(seeded.ID))
}

func TestItemUpdateValidation(t *testing.T) {
	store, svc := newItemFixture()
	store.putItem(newTestItem(1, 0))
	ctx := context.Background()

	empty := ""
	_, err := svc.Update(ctx, types.SnowflakeID(1), UpdateItemInput{Name: &empty, UpdatedBy: "admin"})
	assert.True(t, IsValidation(err))

	badMax := 2
	_, err = svc.Update(ctx, types.SnowflakeID(1), UpdateItemInput{MaximumStock: &badMax, UpdatedBy: "admin"})
	assert.True(t, IsValidation(err), "maximum below existing minimum must be rejected")

	_, err = svc.Update(ctx, types.SnowflakeID(404), UpdateItemInput{UpdatedBy: "admin"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemDeactivate(t *testing.T) {
	store, svc := newItemFixture()
	store.putItem(newTestItem(1, 15))

	item, err := svc.Deactivate(context.Background(), types.SnowflakeID(1), "admin")
	require.NoError(t, err)
	assert.False(t, item.IsActive)

	stored, err := store.GetItem(context.Background(), types.SnowflakeID(1))
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Equal(t, 15, stored.CurrentStock)
}
