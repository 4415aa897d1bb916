package models

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/config"
	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

// The stock ledger is the sole mutator of Product.Stock. Orders drive it
// through status transitions (reverse the old completed effect, apply the new
// one), movements apply immediately. All availability checks run before any
// mutation; once mutation starts nothing can fail.

// adjustStock adds qty (negative to subtract) to a product's on-hand quantity
// at one warehouse. A negative result clamps to zero — that only happens on
// already-inconsistent state, so it is logged rather than raised.
func adjustStock(bk *Books, product *Product, warehouseId int, qty decimal.Decimal) {
	if product.Stock == nil {
		product.Stock = map[int]decimal.Decimal{}
	}
	next := product.Stock[warehouseId].Add(qty)
	if next.IsNegative() {
		config.LogWarn(bk.logger, "stockLedger.go", "adjustStock",
			"negative stock clamped to zero",
			fmt.Sprintf("product=%d warehouse=%d qty=%s", product.ID, warehouseId, next.String()))
		next = decimal.Zero
	}
	product.Stock[warehouseId] = next
}

// applyPurchaseOrderStock reverses oldOrder's effect if it was Received,
// then applies newOrder's effect if it is Received. Editing a Received order
// therefore fully reverses-then-reapplies; transitions among non-completed
// statuses touch nothing. Deletion passes newOrder == nil.
func applyPurchaseOrderStock(bk *Books, newOrder, oldOrder *PurchaseOrder) {
	if oldOrder != nil && oldOrder.CurrentStatus == PurchaseOrderStatusReceived {
		for _, item := range oldOrder.Details {
			if product, ok := bk.Products.Get(item.ProductId); ok {
				adjustStock(bk, product, oldOrder.WarehouseId, item.DetailQty.Neg())
			}
		}
	}
	if newOrder != nil && newOrder.CurrentStatus == PurchaseOrderStatusReceived {
		for _, item := range newOrder.Details {
			if product, ok := bk.Products.Get(item.ProductId); ok {
				adjustStock(bk, product, newOrder.WarehouseId, item.DetailQty)
			}
		}
	}
}

// applySellOrderStock mirrors applyPurchaseOrderStock with the signs swapped:
// Shipped decreases stock, reversing a Shipped order adds it back.
func applySellOrderStock(bk *Books, newOrder, oldOrder *SellOrder) {
	if oldOrder != nil && oldOrder.CurrentStatus == SellOrderStatusShipped {
		for _, item := range oldOrder.Details {
			if product, ok := bk.Products.Get(item.ProductId); ok {
				adjustStock(bk, product, oldOrder.WarehouseId, item.DetailQty)
			}
		}
	}
	if newOrder != nil && newOrder.CurrentStatus == SellOrderStatusShipped {
		for _, item := range newOrder.Details {
			if product, ok := bk.Products.Get(item.ProductId); ok {
				adjustStock(bk, product, newOrder.WarehouseId, item.DetailQty.Neg())
			}
		}
	}
}

// checkSellOrderStock verifies, before anything mutates, that every line item
// of an order about to become Shipped is covered by on-hand stock. When
// editing an order that is already Shipped at the same warehouse, the old
// reserved quantity counts as available again.
func checkSellOrderStock(bk *Books, newOrder, oldOrder *SellOrder) error {
	if newOrder.CurrentStatus != SellOrderStatusShipped {
		return nil
	}
	for _, item := range newOrder.Details {
		product, ok := bk.Products.Get(item.ProductId)
		if !ok {
			return utils.NewValidationError(fmt.Sprintf("product %d not found", item.ProductId))
		}
		available := product.Stock[newOrder.WarehouseId]
		if oldOrder != nil && oldOrder.CurrentStatus == SellOrderStatusShipped &&
			oldOrder.WarehouseId == newOrder.WarehouseId {
			for _, oldItem := range oldOrder.Details {
				if oldItem.ProductId == item.ProductId {
					available = available.Add(oldItem.DetailQty)
				}
			}
		}
		if available.LessThan(item.DetailQty) {
			return utils.NewValidationError(fmt.Sprintf(
				"insufficient stock for product %s: available %s, requested %s",
				product.Sku, available.String(), item.DetailQty.String()))
		}
	}
	return nil
}

// checkMovementStock is the all-or-nothing pre-check: every item must be
// covered at the source warehouse before any quantity moves. excluding, when
// non-nil, is an existing movement whose effect is about to be reversed (an
// edit), so its quantities count back into availability.
func checkMovementStock(bk *Books, movement, excluding *ProductMovement) error {
	for _, item := range movement.Items {
		product, ok := bk.Products.Get(item.ProductId)
		if !ok {
			return utils.NewValidationError(fmt.Sprintf("product %d not found", item.ProductId))
		}
		available := product.Stock[movement.SourceWarehouseId]
		if excluding != nil {
			for _, oldItem := range excluding.Items {
				if oldItem.ProductId != item.ProductId {
					continue
				}
				if excluding.SourceWarehouseId == movement.SourceWarehouseId {
					available = available.Add(oldItem.Quantity)
				}
				if excluding.DestWarehouseId == movement.SourceWarehouseId {
					available = available.Sub(oldItem.Quantity)
				}
			}
		}
		if available.LessThan(item.Quantity) {
			return utils.NewValidationError(fmt.Sprintf(
				"insufficient stock for product %s at source warehouse: available %s, requested %s",
				product.Sku, available.String(), item.Quantity.String()))
		}
	}
	return nil
}

// applyMovement decrements every item at the source and increments it at the
// destination. Callers must have run checkMovementStock first.
func applyMovement(bk *Books, movement *ProductMovement) {
	for _, item := range movement.Items {
		if product, ok := bk.Products.Get(item.ProductId); ok {
			adjustStock(bk, product, movement.SourceWarehouseId, item.Quantity.Neg())
			adjustStock(bk, product, movement.DestWarehouseId, item.Quantity)
		}
	}
}

// reverseMovement restores pre-movement quantities. No availability re-check:
// it only puts back what the movement took.
func reverseMovement(bk *Books, movement *ProductMovement) {
	for _, item := range movement.Items {
		if product, ok := bk.Products.Get(item.ProductId); ok {
			adjustStock(bk, product, movement.DestWarehouseId, item.Quantity.Neg())
			adjustStock(bk, product, movement.SourceWarehouseId, item.Quantity)
		}
	}
}
