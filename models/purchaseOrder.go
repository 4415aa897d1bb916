package models

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

type PurchaseOrder struct {
	ID            int                 `json:"id"`
	OrderNumber   string              `json:"order_number"`
	SupplierId    int                 `json:"supplier_id"`
	WarehouseId   int                 `json:"warehouse_id"`
	OrderDate     time.Time           `json:"order_date"`
	CurrentStatus PurchaseOrderStatus `json:"current_status"`
	// Currency and ExchangeRate apply to every line item. A zero rate means
	// the configured rate table is used instead.
	Currency                   string                `json:"currency"`
	ExchangeRate               decimal.Decimal       `json:"exchange_rate"`
	TransportationFees         decimal.Decimal       `json:"transportation_fees"`
	TransportationFeesCurrency string                `json:"transportation_fees_currency"`
	CustomFees                 decimal.Decimal       `json:"custom_fees"`
	CustomFeesCurrency         string                `json:"custom_fees_currency"`
	AdditionalFees             decimal.Decimal       `json:"additional_fees"`
	AdditionalFeesCurrency     string                `json:"additional_fees_currency"`
	OrderTotal                 decimal.Decimal       `json:"order_total"`
	Details                    []PurchaseOrderDetail `json:"details"`
	CreatedAt                  time.Time             `json:"created_at"`
	UpdatedAt                  time.Time             `json:"updated_at"`
}

type PurchaseOrderDetail struct {
	ProductId      int             `json:"product_id"`
	DetailQty      decimal.Decimal `json:"detail_qty"`
	DetailUnitRate decimal.Decimal `json:"detail_unit_rate"`
	// Derived by AllocateLandedCosts, never user-entered.
	LandedCostPerUnit decimal.Decimal `json:"landed_cost_per_unit"`
}

type NewPurchaseOrder struct {
	SupplierId                 int                      `json:"supplier_id" validate:"required"`
	WarehouseId                int                      `json:"warehouse_id" validate:"required"`
	OrderDate                  time.Time                `json:"order_date"`
	CurrentStatus              PurchaseOrderStatus      `json:"current_status" validate:"required"`
	Currency                   string                   `json:"currency" validate:"required"`
	ExchangeRate               decimal.Decimal          `json:"exchange_rate"`
	TransportationFees         decimal.Decimal          `json:"transportation_fees"`
	TransportationFeesCurrency string                   `json:"transportation_fees_currency"`
	CustomFees                 decimal.Decimal          `json:"custom_fees"`
	CustomFeesCurrency         string                   `json:"custom_fees_currency"`
	AdditionalFees             decimal.Decimal          `json:"additional_fees"`
	AdditionalFeesCurrency     string                   `json:"additional_fees_currency"`
	Details                    []NewPurchaseOrderDetail `json:"details" validate:"required,min=1,dive"`
}

type NewPurchaseOrderDetail struct {
	ProductId      int             `json:"product_id" validate:"required"`
	DetailQty      decimal.Decimal `json:"detail_qty"`
	DetailUnitRate decimal.Decimal `json:"detail_unit_rate"`
}

func (po *PurchaseOrder) GetId() int {
	return po.ID
}

func (po *PurchaseOrder) SetId(id int) {
	po.ID = id
}

// validate input for both create & update. (id = 0 for create)

func (input *NewPurchaseOrder) validate(bk *Books, id int) error {
	if !input.CurrentStatus.valid() {
		return utils.NewValidationError("invalid purchase order status")
	}
	if _, ok := bk.Suppliers.Get(input.SupplierId); !ok {
		return utils.NewValidationError("supplier not found")
	}
	if _, ok := bk.Warehouses.Get(input.WarehouseId); !ok {
		return utils.NewValidationError("warehouse not found")
	}
	for _, item := range input.Details {
		if _, ok := bk.Products.Get(item.ProductId); !ok {
			return utils.NewValidationError(fmt.Sprintf("product %d not found", item.ProductId))
		}
		if !item.DetailQty.IsPositive() {
			return utils.NewValidationError("item quantity must be positive")
		}
		if item.DetailUnitRate.IsNegative() {
			return utils.NewValidationError("item price cannot be negative")
		}
	}
	if input.TransportationFees.IsNegative() || input.CustomFees.IsNegative() || input.AdditionalFees.IsNegative() {
		return utils.NewValidationError("fees cannot be negative")
	}
	if input.ExchangeRate.IsNegative() {
		return utils.NewValidationError("exchange rate cannot be negative")
	}
	if err := requireRate(bk, input.Currency, input.ExchangeRate); err != nil {
		return err
	}
	for _, fee := range []struct {
		amount   decimal.Decimal
		currency string
	}{
		{input.TransportationFees, input.TransportationFeesCurrency},
		{input.CustomFees, input.CustomFeesCurrency},
		{input.AdditionalFees, input.AdditionalFeesCurrency},
	} {
		if fee.amount.IsPositive() && fee.currency != "" {
			if err := requireRate(bk, fee.currency, decimal.Zero); err != nil {
				return err
			}
		}
	}
	return nil
}

func (input *NewPurchaseOrder) build(bk *Books) *PurchaseOrder {
	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	po := &PurchaseOrder{
		SupplierId:                 input.SupplierId,
		WarehouseId:                input.WarehouseId,
		OrderDate:                  orderDate,
		CurrentStatus:              input.CurrentStatus,
		Currency:                   input.Currency,
		ExchangeRate:               input.ExchangeRate,
		TransportationFees:         input.TransportationFees,
		TransportationFeesCurrency: feeCurrencyOrLedger(bk, input.TransportationFeesCurrency),
		CustomFees:                 input.CustomFees,
		CustomFeesCurrency:         feeCurrencyOrLedger(bk, input.CustomFeesCurrency),
		AdditionalFees:             input.AdditionalFees,
		AdditionalFeesCurrency:     feeCurrencyOrLedger(bk, input.AdditionalFeesCurrency),
	}
	for _, item := range input.Details {
		po.Details = append(po.Details, PurchaseOrderDetail{
			ProductId:      item.ProductId,
			DetailQty:      item.DetailQty,
			DetailUnitRate: item.DetailUnitRate,
		})
	}
	return po
}

func feeCurrencyOrLedger(bk *Books, currency string) string {
	if currency == "" {
		return bk.Settings.LedgerCurrency
	}
	return currency
}

func CreatePurchaseOrder(ctx context.Context, bk *Books, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, 0); err != nil {
		return nil, err
	}

	po := input.build(bk)
	po.ID = bk.PurchaseOrders.NextId()
	po.OrderNumber = utils.FormatOrderNumber("PO", po.ID)
	po.CreatedAt = time.Now()
	po.UpdatedAt = po.CreatedAt
	AllocateLandedCosts(bk, po)

	applyPurchaseOrderStock(bk, po, nil)
	if po.CurrentStatus == PurchaseOrderStatusReceived {
		for _, item := range po.Details {
			if product, ok := bk.Products.Get(item.ProductId); ok {
				applyReceiptCost(product, item)
			}
		}
	}

	if err := bk.PurchaseOrders.insert(ctx, po); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return po, nil
}

// UpdatePurchaseOrder re-runs the status comparison on every save: a Received
// order's old effect is reversed and the new one applied even when the status
// did not change, which makes line-item edits safe and identical-status saves
// a no-op by construction.
func UpdatePurchaseOrder(ctx context.Context, bk *Books, id int, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, id); err != nil {
		return nil, err
	}
	old, ok := bk.PurchaseOrders.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	po := input.build(bk)
	po.ID = old.ID
	po.OrderNumber = old.OrderNumber
	po.CreatedAt = old.CreatedAt
	po.UpdatedAt = time.Now()
	AllocateLandedCosts(bk, po)

	applyPurchaseOrderStock(bk, po, old)
	if po.CurrentStatus == PurchaseOrderStatusReceived {
		for _, item := range po.Details {
			if product, ok := bk.Products.Get(item.ProductId); ok {
				applyReceiptCost(product, item)
			}
		}
	}

	if err := bk.PurchaseOrders.insert(ctx, po); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return po, nil
}

func DeletePurchaseOrder(ctx context.Context, bk *Books, id int) (*PurchaseOrder, error) {
	po, ok := bk.PurchaseOrders.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	applyPurchaseOrderStock(bk, nil, po)
	if _, err := softDeleteRecord(ctx, bk, bk.PurchaseOrders, id); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return po, nil
}

func GetPurchaseOrder(ctx context.Context, bk *Books, id int) (*PurchaseOrder, error) {
	po, ok := bk.PurchaseOrders.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return po, nil
}

func GetPurchaseOrders(ctx context.Context, bk *Books) []*PurchaseOrder {
	return bk.PurchaseOrders.All()
}
