package models

import (
	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

// applyReceiptCost folds one received line item into the product's running
// weighted-average landed cost. StockLedger runs first, so the product's
// total stock already includes this receipt's quantity.
//
// The average is forward-only: reverting or deleting a Received order rolls
// back quantities but never the cost basis, because no per-receipt lot
// history is kept to rewind to.
func applyReceiptCost(product *Product, item PurchaseOrderDetail) {
	if !item.LandedCostPerUnit.IsPositive() {
		return
	}
	totalStockAfter := product.TotalStock()
	stockBefore := totalStockAfter.Sub(item.DetailQty)

	if stockBefore.IsPositive() && product.AverageLandedCost.IsPositive() {
		blended := stockBefore.Mul(product.AverageLandedCost).
			Add(item.DetailQty.Mul(item.LandedCostPerUnit)).
			Div(totalStockAfter)
		product.AverageLandedCost = utils.RoundCost(blended)
		return
	}
	// No prior stock or no prior cost basis: reset, not blend.
	product.AverageLandedCost = item.LandedCostPerUnit
}
