package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/models"
)

// A USD order at rate 2.0: 10 units at $5 gives a 100 AZN subtotal, and a
// 20 AZN transportation fee spreads across the single item.
func TestLandedCostForeignCurrencyWithFees(t *testing.T) {
	ctx, f := newFixture(t)
	product := f.product(t, ctx, "MOUSE-1")

	po, err := models.CreatePurchaseOrder(ctx, f.bk, &models.NewPurchaseOrder{
		SupplierId:         f.supplier.ID,
		WarehouseId:        f.main.ID,
		CurrentStatus:      models.PurchaseOrderStatusReceived,
		Currency:           "USD",
		ExchangeRate:       decimal.NewFromInt(2),
		TransportationFees: decimal.NewFromInt(20),
		Details: []models.NewPurchaseOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(10), DetailUnitRate: decimal.NewFromInt(5)},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}

	mustEqual(t, po.Details[0].LandedCostPerUnit, "12", "landed cost per unit")
	mustEqual(t, po.OrderTotal, "120", "order total")
	mustEqual(t, product.AverageLandedCost, "12", "average landed cost")
}

// Fee shares are proportional to each item's value, and the per-unit costs
// multiplied back by quantities recover subtotal plus fees within a cent.
func TestLandedCostAllocationSumsToSubtotalPlusFees(t *testing.T) {
	ctx, f := newFixture(t)
	a := f.product(t, ctx, "A")
	b := f.product(t, ctx, "B")
	c := f.product(t, ctx, "C")

	po, err := models.CreatePurchaseOrder(ctx, f.bk, &models.NewPurchaseOrder{
		SupplierId:         f.supplier.ID,
		WarehouseId:        f.main.ID,
		CurrentStatus:      models.PurchaseOrderStatusOrdered,
		Currency:           f.bk.Settings.LedgerCurrency,
		TransportationFees: decimal.NewFromInt(37),
		CustomFees:         decimal.NewFromInt(13),
		AdditionalFees:     decimal.NewFromFloat(7.5),
		Details: []models.NewPurchaseOrderDetail{
			{ProductId: a.ID, DetailQty: decimal.NewFromInt(3), DetailUnitRate: decimal.NewFromFloat(19.99)},
			{ProductId: b.ID, DetailQty: decimal.NewFromInt(7), DetailUnitRate: decimal.NewFromFloat(4.25)},
			{ProductId: c.ID, DetailQty: decimal.NewFromInt(1), DetailUnitRate: decimal.NewFromInt(120)},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}

	recovered := decimal.Zero
	for _, item := range po.Details {
		recovered = recovered.Add(item.LandedCostPerUnit.Mul(item.DetailQty))
	}
	diff := recovered.Sub(po.OrderTotal).Abs()
	if diff.GreaterThan(decimal.NewFromFloat(0.01)) {
		t.Fatalf("recovered %s vs total %s, diff %s", recovered.String(), po.OrderTotal.String(), diff.String())
	}
}

// One zero-priced item still absorbs the whole fee bucket; fees must not
// vanish for a single free/sample line.
func TestLandedCostSingleZeroPricedItemAbsorbsFees(t *testing.T) {
	ctx, f := newFixture(t)
	product := f.product(t, ctx, "SAMPLE-1")

	po, err := models.CreatePurchaseOrder(ctx, f.bk, &models.NewPurchaseOrder{
		SupplierId:         f.supplier.ID,
		WarehouseId:        f.main.ID,
		CurrentStatus:      models.PurchaseOrderStatusReceived,
		Currency:           f.bk.Settings.LedgerCurrency,
		TransportationFees: decimal.NewFromInt(100),
		Details: []models.NewPurchaseOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(5), DetailUnitRate: decimal.Zero},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}

	mustEqual(t, po.Details[0].LandedCostPerUnit, "20", "landed cost per unit")
	mustEqual(t, po.OrderTotal, "100", "order total")
}

// Several zero-priced items on a zero subtotal get no fee share at all.
// Long-standing behavior, kept as is.
func TestLandedCostMultipleZeroPricedItemsGetNoFeeShare(t *testing.T) {
	ctx, f := newFixture(t)
	a := f.product(t, ctx, "FREE-A")
	b := f.product(t, ctx, "FREE-B")

	po, err := models.CreatePurchaseOrder(ctx, f.bk, &models.NewPurchaseOrder{
		SupplierId:         f.supplier.ID,
		WarehouseId:        f.main.ID,
		CurrentStatus:      models.PurchaseOrderStatusDraft,
		Currency:           f.bk.Settings.LedgerCurrency,
		TransportationFees: decimal.NewFromInt(100),
		Details: []models.NewPurchaseOrderDetail{
			{ProductId: a.ID, DetailQty: decimal.NewFromInt(2), DetailUnitRate: decimal.Zero},
			{ProductId: b.ID, DetailQty: decimal.NewFromInt(3), DetailUnitRate: decimal.Zero},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}

	for i, item := range po.Details {
		if !item.LandedCostPerUnit.IsZero() {
			t.Fatalf("item %d: landed cost %s, want 0", i, item.LandedCostPerUnit.String())
		}
	}
	mustEqual(t, po.OrderTotal, "100", "order total keeps the fees")
}

func TestPurchaseOrderMissingRateRejectedBeforeSave(t *testing.T) {
	ctx, f := newFixture(t)
	product := f.product(t, ctx, "EUR-1")

	_, err := models.CreatePurchaseOrder(ctx, f.bk, &models.NewPurchaseOrder{
		SupplierId:    f.supplier.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.PurchaseOrderStatusDraft,
		Currency:      "EUR",
		Details: []models.NewPurchaseOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(1), DetailUnitRate: decimal.NewFromInt(10)},
		},
	})
	if err == nil {
		t.Fatal("expected a validation failure for the missing EUR rate")
	}
	if f.bk.PurchaseOrders.Count() != 0 {
		t.Fatal("no order may be persisted on a validation failure")
	}
}
