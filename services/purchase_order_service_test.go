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

func newTestSupplier(id int64, active bool) *models.Supplier {
	return &models.Supplier{
		ID:       types.SnowflakeID(id),
		Name:     "Acme Industrial",
		IsActive: active,
	}
}

type poFixture struct {
	stock     *memoryStockStore
	orders    *memoryOrderStore
	suppliers *memorySupplierDirectory
	svc       *PurchaseOrderService
}

func newPOFixture(t *testing.T) *poFixture {
	t.Helper()
	stock := newMemoryStockStore()
	stock.putItem(newTestItem(1, 0))
	stock.putItem(newTestItem(2, 50))
	orders := newMemoryOrderStore()
	suppliers := newMemorySupplierDirectory(
		newTestSupplier(10, true),
		newTestSupplier(11, false),
	)
	return &poFixture{
		stock:     stock,
		orders:    orders,
		suppliers: suppliers,
		svc:       NewPurchaseOrderService(orders, stock, suppliers),
	}
}

func (f *poFixture) createDraft(t *testing.T) *models.PurchaseOrder {
	t.Helper()
	po, err := f.svc.Create(context.Background(), CreateOrderInput{
		SupplierID: types.SnowflakeID(10),
		Lines: []OrderLineInput{
			{ItemID: types.SnowflakeID(1), Quantity: 20, UnitPrice: decimal.NewFromFloat(2.50)},
			{ItemID: types.SnowflakeID(2), Quantity: 5, UnitPrice: decimal.NewFromInt(8)},
		},
		Tax:       decimal.NewFromInt(9),
		Shipping:  decimal.NewFromInt(1),
		CreatedBy: "buyer",
	})
	require.NoError(t, err)
	return po
}

func TestPurchaseOrderCreate(t *testing.T) {
	f := newPOFixture(t)
	po := f.createDraft(t)

	assert.Equal(t, models.POStatusDraft, po.Status)
	assert.NotEmpty(t, po.OrderNumber)
	require.Len(t, po.Lines, 2)
	assert.Equal(t, 20, po.Lines[0].QuantityOrdered)
	assert.Equal(t, 0, po.Lines[0].QuantityReceived)

	// 20*2.50 + 5*8 = 90, plus 9 tax and 1 shipping.
	assert.True(t, po.Subtotal.Equal(decimal.NewFromInt(90)), "subtotal %s", po.Subtotal)
	assert.True(t, po.Total.Equal(decimal.NewFromInt(100)), "total %s", po.Total)

	stored, err := f.orders.GetOrder(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Equal(t, models.POStatusDraft, stored.Status)
}

func TestPurchaseOrderCreateValidation(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()
	line := OrderLineInput{ItemID: types.SnowflakeID(1), Quantity: 1, UnitPrice: decimal.NewFromInt(1)}

	cases := []struct {
		name string
		in   CreateOrderInput
		want error
	}{
		{
			name: "unknown supplier",
			in:   CreateOrderInput{SupplierID: 99, Lines: []OrderLineInput{line}, CreatedBy: "buyer"},
			want: ErrNotFound,
		},
		{
			name: "inactive supplier",
			in:   CreateOrderInput{SupplierID: 11, Lines: []OrderLineInput{line}, CreatedBy: "buyer"},
		},
		{
			name: "no lines",
			in:   CreateOrderInput{SupplierID: 10, CreatedBy: "buyer"},
		},
		{
			name: "zero quantity",
			in: CreateOrderInput{SupplierID: 10, CreatedBy: "buyer", Lines: []OrderLineInput{
				{ItemID: 1, Quantity: 0, UnitPrice: decimal.NewFromInt(1)},
			}},
		},
		{
			name: "negative price",
			in: CreateOrderInput{SupplierID: 10, CreatedBy: "buyer", Lines: []OrderLineInput{
				{ItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)},
			}},
		},
		{
			name: "duplicate item",
			in:   CreateOrderInput{SupplierID: 10, CreatedBy: "buyer", Lines: []OrderLineInput{line, line}},
		},
		{
			name: "unknown item",
			in: CreateOrderInput{SupplierID: 10, CreatedBy: "buyer", Lines: []OrderLineInput{
				{ItemID: 404, Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
			}},
			want: ErrNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tc.in)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			} else {
				assert.True(t, IsValidation(err), "expected validation error, got %v", err)
			}
		})
	}
}

func TestPurchaseOrderCreateInactiveItem(t *testing.T) {
	f := newPOFixture(t)
	inactive := newTestItem(3, 0)
	inactive.IsActive = false
	f.stock.putItem(inactive)

	_, err := f.svc.Create(context.Background(), CreateOrderInput{
		SupplierID: types.SnowflakeID(10),
		Lines: []OrderLineInput{
			{ItemID: types.SnowflakeID(3), Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
		CreatedBy: "buyer",
	})
	assert.True(t, IsValidation(err))
}

func TestPurchaseOrderLifecycle(t *testing.T) {
	f := newPOFixture(t)
	po := f.createDraft(t)
	ctx := context.Background()

	po, err := f.svc.Send(ctx, po.ID, "buyer")
	require.NoError(t, err)
	assert.Equal(t, models.POStatusSent, po.Status)

	po, err = f.svc.Confirm(ctx, po.ID, "buyer")
	require.NoError(t, err)
	assert.Equal(t, models.POStatusConfirmed, po.Status)
	assert.Equal(t, 2, po.Version)
}

func TestPurchaseOrderInvalidTransitions(t *testing.T) {
	f := newPOFixture(t)
	po := f.createDraft(t)
	ctx := context.Background()

	// Draft cannot be confirmed before being sent.
	_, err := f.svc.Confirm(ctx, po.ID, "buyer")
	require.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Send(ctx, po.ID, "buyer")
	require.NoError(t, err)

	// Sent cannot be sent again.
	_, err = f.svc.Send(ctx, po.ID, "buyer")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPurchaseOrderCancel(t *testing.T) {
	f := newPOFixture(t)
	ctx := context.Background()

	for _, prepare := range []func(po *models.PurchaseOrder){
		func(po *models.PurchaseOrder) {},
		func(po *models.PurchaseOrder) {
			_, err := f.svc.Send(ctx, po.ID, "buyer")
			require.NoError(t, err)
		},
		func(po *models.PurchaseOrder) {
			_, err := f.svc.Send(ctx, po.ID, "buyer")
			require.NoError(t, err)
			_, err = f.svc.Confirm(ctx, po.ID, "buyer")
			require.NoError(t, err)
		},
	} {
		po := f.createDraft(t)
		prepare(po)

		po, err := f.svc.Cancel(ctx, po.ID, "buyer")
		require.NoError(t, err)
		assert.Equal(t, models.POStatusCancelled, po.Status)
	}
}

func TestPurchaseOrderCancelAfterReceiptRejected(t *testing.T) {
	f := newPOFixture(t)
	po := f.createDraft(t)
	ctx := context.Background()

	// Force the stored order into a received state.
	stored, err := f.orders.GetOrder(ctx, po.ID)
	require.NoError(t, err)
	stored.Status = models.POStatusPartiallyReceived
	require.NoError(t, f.orders.SaveOrder(ctx, stored, stored.Version))

	_, err = f.svc.Cancel(ctx, po.ID, "buyer")
	require.ErrorIs(t, err, ErrInvalidTransition)

	stored.Status = models.POStatusReceived
	require.NoError(t, f.orders.SaveOrder(ctx, stored, stored.Version))

	_, err = f.svc.Cancel(ctx, po.ID, "buyer")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPurchaseOrderTransitionRequiresActor(t *testing.T) {
	f := newPOFixture(t)
	po := f.createDraft(t)

	_, err := f.svc.Send(context.Background(), po.ID, "")
	assert.True(t, IsValidation(err))
}
