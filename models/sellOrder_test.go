package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/models"
	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

func TestSellOrderTotalIncludesVat(t *testing.T) {
	ctx, f := newFixture(t)
	product := f.product(t, ctx, "VAT-1")
	f.receive(t, ctx, product, f.main, 10, 5)

	so, err := models.CreateSellOrder(ctx, f.bk, &models.NewSellOrder{
		CustomerId:    f.customer.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.SellOrderStatusConfirmed,
		VatPercent:    decimal.NewFromInt(18),
		Details: []models.NewSellOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(4), DetailUnitRate: decimal.NewFromInt(25)},
		},
	})
	if err != nil {
		t.Fatalf("CreateSellOrder: %v", err)
	}
	mustEqual(t, so.OrderTotal, "118", "4 x 25 plus 18 percent VAT")
	mustEqual(t, product.Stock[f.main.ID], "10", "confirmed does not ship")
}

// Shipping more than is on hand fails as a validation error before any stock
// moves and before the order is persisted.
func TestShippingBeyondAvailabilityFailsWithoutMutation(t *testing.T) {
	ctx, f := newFixture(t)
	product := f.product(t, ctx, "SHORT-1")
	f.receive(t, ctx, product, f.main, 2, 10)

	_, err := models.CreateSellOrder(ctx, f.bk, &models.NewSellOrder{
		CustomerId:    f.customer.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.SellOrderStatusShipped,
		Details: []models.NewSellOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(3), DetailUnitRate: decimal.NewFromInt(20)},
		},
	})
	if err == nil {
		t.Fatal("expected a stock-insufficiency failure")
	}
	if !utils.IsValidationError(err) {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}
	mustEqual(t, product.Stock[f.main.ID], "2", "stock untouched")
	if f.bk.SellOrders.Count() != 0 {
		t.Fatal("order must not be persisted")
	}
}

// When a multi-line order ships short on the second line, the first line must
// not have been committed either.
func TestShippedSaveIsAllOrNothingAcrossLines(t *testing.T) {
	ctx, f := newFixture(t)
	plenty := f.product(t, ctx, "PLENTY-1")
	scarce := f.product(t, ctx, "SCARCE-1")
	f.receive(t, ctx, plenty, f.main, 100, 1)
	f.receive(t, ctx, scarce, f.main, 1, 1)

	_, err := models.CreateSellOrder(ctx, f.bk, &models.NewSellOrder{
		CustomerId:    f.customer.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.SellOrderStatusShipped,
		Details: []models.NewSellOrderDetail{
			{ProductId: plenty.ID, DetailQty: decimal.NewFromInt(10), DetailUnitRate: decimal.NewFromInt(5)},
			{ProductId: scarce.ID, DetailQty: decimal.NewFromInt(2), DetailUnitRate: decimal.NewFromInt(5)},
		},
	})
	if err == nil {
		t.Fatal("expected a stock-insufficiency failure")
	}
	mustEqual(t, plenty.Stock[f.main.ID], "100", "first line not committed")
	mustEqual(t, scarce.Stock[f.main.ID], "1", "second line not committed")
}

// Editing a Shipped order counts its own old reservation as available again.
func TestEditingShippedOrderReusesItsOwnReservation(t *testing.T) {
	ctx, f := newFixture(t)
	product := f.product(t, ctx, "RESERVE-1")
	f.receive(t, ctx, product, f.main, 5, 10)

	so, err := models.CreateSellOrder(ctx, f.bk, &models.NewSellOrder{
		CustomerId:    f.customer.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.SellOrderStatusShipped,
		Details: []models.NewSellOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(4), DetailUnitRate: decimal.NewFromInt(20)},
		},
	})
	if err != nil {
		t.Fatalf("CreateSellOrder: %v", err)
	}
	mustEqual(t, product.Stock[f.main.ID], "1", "stock after shipping 4 of 5")

	// 5 requested, 1 on hand, 4 come back from this order's own reversal.
	updated, err := models.UpdateSellOrder(ctx, f.bk, so.ID, &models.NewSellOrder{
		CustomerId:    f.customer.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.SellOrderStatusShipped,
		Details: []models.NewSellOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(5), DetailUnitRate: decimal.NewFromInt(20)},
		},
	})
	if err != nil {
		t.Fatalf("UpdateSellOrder: %v", err)
	}
	mustEqual(t, product.Stock[f.main.ID], "0", "all 5 shipped")
	if updated.ID != so.ID {
		t.Fatalf("update must keep the id, got %d want %d", updated.ID, so.ID)
	}

	// But 6 is genuinely short even with the reservation back.
	_, err = models.UpdateSellOrder(ctx, f.bk, so.ID, &models.NewSellOrder{
		CustomerId:    f.customer.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.SellOrderStatusShipped,
		Details: []models.NewSellOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(6), DetailUnitRate: decimal.NewFromInt(20)},
		},
	})
	if !utils.IsValidationError(err) {
		t.Fatalf("want ValidationError for 6 of 5, got %v", err)
	}
}

func TestRevertingShippedOrderRestoresStock(t *testing.T) {
	ctx, f := newFixture(t)
	product := f.product(t, ctx, "UNSHIP-1")
	f.receive(t, ctx, product, f.main, 5, 10)

	so, err := models.CreateSellOrder(ctx, f.bk, &models.NewSellOrder{
		CustomerId:    f.customer.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.SellOrderStatusShipped,
		Details: []models.NewSellOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(3), DetailUnitRate: decimal.NewFromInt(20)},
		},
	})
	if err != nil {
		t.Fatalf("CreateSellOrder: %v", err)
	}
	mustEqual(t, product.Stock[f.main.ID], "2", "after shipping")

	if _, err := models.UpdateSellOrder(ctx, f.bk, so.ID, &models.NewSellOrder{
		CustomerId:    f.customer.ID,
		WarehouseId:   f.main.ID,
		CurrentStatus: models.SellOrderStatusDraft,
		Details: []models.NewSellOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(3), DetailUnitRate: decimal.NewFromInt(20)},
		},
	}); err != nil {
		t.Fatalf("UpdateSellOrder: %v", err)
	}
	mustEqual(t, product.Stock[f.main.ID], "5", "back to pre-ship level")
}
