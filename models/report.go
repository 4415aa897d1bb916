package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

// Read-only summaries for the dashboard/finance collaborators. Nothing here
// mutates state; the core guarantees the fields read are consistent with the
// order history at the moment of read.

// StockValuation is the ledger-currency value of everything on hand,
// priced at average landed cost.
func StockValuation(ctx context.Context, bk *Books) decimal.Decimal {
	total := decimal.Zero
	for _, product := range bk.Products.All() {
		total = total.Add(product.TotalStock().Mul(product.AverageLandedCost))
	}
	return utils.RoundMoney(total)
}

func LowStockProducts(ctx context.Context, bk *Books) []*Product {
	var low []*Product
	for _, product := range bk.Products.All() {
		if product.IsBelowMinStock() {
			low = append(low, product)
		}
	}
	return low
}

// SellOrderProfit is VAT-exclusive revenue minus COGS at the product's
// current average landed cost.
func SellOrderProfit(ctx context.Context, bk *Books, so *SellOrder) decimal.Decimal {
	cogs := decimal.Zero
	for _, item := range so.Details {
		if product, ok := bk.Products.Get(item.ProductId); ok {
			cogs = cogs.Add(item.DetailQty.Mul(product.AverageLandedCost))
		}
	}
	return utils.RoundMoney(so.Subtotal().Sub(cogs))
}

type FinanceSummary struct {
	Incoming decimal.Decimal `json:"incoming"`
	Outgoing decimal.Decimal `json:"outgoing"`
	Net      decimal.Decimal `json:"net"`
}

// PaymentTotals sums ledger-currency payments inside [from, to). Zero bounds
// mean unbounded.
func PaymentTotals(ctx context.Context, bk *Books, from, to time.Time) FinanceSummary {
	summary := FinanceSummary{Incoming: decimal.Zero, Outgoing: decimal.Zero}
	for _, payment := range bk.Payments.All() {
		if !from.IsZero() && payment.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !payment.Date.Before(to) {
			continue
		}
		switch payment.Type {
		case PaymentTypeIncoming:
			summary.Incoming = summary.Incoming.Add(payment.AmountLedger)
		case PaymentTypeOutgoing:
			summary.Outgoing = summary.Outgoing.Add(payment.AmountLedger)
		}
	}
	summary.Net = summary.Incoming.Sub(summary.Outgoing)
	return summary
}

// ShippedProfit totals profit over every Shipped sell order in [from, to).
func ShippedProfit(ctx context.Context, bk *Books, from, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, so := range bk.SellOrders.All() {
		if so.CurrentStatus != SellOrderStatusShipped {
			continue
		}
		if !from.IsZero() && so.OrderDate.Before(from) {
			continue
		}
		if !to.IsZero() && !so.OrderDate.Before(to) {
			continue
		}
		total = total.Add(SellOrderProfit(ctx, bk, so))
	}
	return utils.RoundMoney(total)
}
