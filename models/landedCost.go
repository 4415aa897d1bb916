package models

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

// AllocateLandedCosts derives LandedCostPerUnit for every line item of a
// purchase order and the order's grand total, all in the ledger currency.
//
// Line items share the order's currency and exchange rate. The three fee
// buckets convert independently through the rate table, then spread across
// items proportionally to each item's share of the products subtotal.
// Recomputed on every save; a stale landed cost is never persisted.
func AllocateLandedCosts(bk *Books, po *PurchaseOrder) {
	productsSubtotal := decimal.Zero
	itemValues := make([]decimal.Decimal, len(po.Details))
	for i, item := range po.Details {
		value := bk.ToLedger(item.DetailQty.Mul(item.DetailUnitRate), po.Currency, po.ExchangeRate)
		itemValues[i] = value
		productsSubtotal = productsSubtotal.Add(value)
	}

	totalFees := bk.ToLedger(po.TransportationFees, po.TransportationFeesCurrency, decimal.Zero).
		Add(bk.ToLedger(po.CustomFees, po.CustomFeesCurrency, decimal.Zero)).
		Add(bk.ToLedger(po.AdditionalFees, po.AdditionalFeesCurrency, decimal.Zero))

	for i := range po.Details {
		item := &po.Details[i]
		if item.DetailQty.IsZero() {
			item.LandedCostPerUnit = decimal.Zero
			continue
		}
		var share decimal.Decimal
		switch {
		case productsSubtotal.IsPositive():
			share = itemValues[i].Div(productsSubtotal).Mul(totalFees)
		case len(po.Details) == 1:
			// A single zero-priced item still carries the whole fee burden,
			// otherwise fees silently vanish from the landed cost.
			share = totalFees
		default:
			// Several zero-priced items on a zero subtotal: no allocation.
			share = decimal.Zero
		}
		item.LandedCostPerUnit = utils.RoundCost(itemValues[i].Add(share).Div(item.DetailQty))
	}

	po.OrderTotal = utils.RoundMoney(productsSubtotal.Add(totalFees))
}
