package models

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// RebuildInventory re-derives every product's stock map and average landed
// cost from scratch by replaying completed orders and movements in date
// order. Stock is fully derived from the event history, so a replay must land
// on the same state; this is the recovery tool for stores that drifted (for
// example after restoring completed documents from the recycle bin).
func RebuildInventory(ctx context.Context, bk *Books) error {
	for _, product := range bk.Products.All() {
		product.Stock = map[int]decimal.Decimal{}
		product.AverageLandedCost = decimal.Zero
	}

	type event struct {
		date  time.Time
		seq   int
		apply func()
	}
	var events []event
	seq := 0

	for _, po := range bk.PurchaseOrders.All() {
		if po.CurrentStatus != PurchaseOrderStatusReceived {
			continue
		}
		po := po
		seq++
		events = append(events, event{po.OrderDate, seq, func() {
			applyPurchaseOrderStock(bk, po, nil)
			for _, item := range po.Details {
				if product, ok := bk.Products.Get(item.ProductId); ok {
					applyReceiptCost(product, item)
				}
			}
		}})
	}
	for _, so := range bk.SellOrders.All() {
		if so.CurrentStatus != SellOrderStatusShipped {
			continue
		}
		so := so
		seq++
		events = append(events, event{so.OrderDate, seq, func() {
			applySellOrderStock(bk, so, nil)
		}})
	}
	for _, movement := range bk.Movements.All() {
		movement := movement
		seq++
		events = append(events, event{movement.Date, seq, func() {
			applyMovement(bk, movement)
		}})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].date.Equal(events[j].date) {
			return events[i].seq < events[j].seq
		}
		return events[i].date.Before(events[j].date)
	})
	for _, ev := range events {
		ev.apply()
	}

	return bk.Products.flush(ctx)
}
