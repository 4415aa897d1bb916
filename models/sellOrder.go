package models

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

type SellOrder struct {
	ID            int               `json:"id"`
	OrderNumber   string            `json:"order_number"`
	CustomerId    int               `json:"customer_id"`
	WarehouseId   int               `json:"warehouse_id"`
	OrderDate     time.Time         `json:"order_date"`
	CurrentStatus SellOrderStatus   `json:"current_status"`
	VatPercent    decimal.Decimal   `json:"vat_percent"`
	OrderTotal    decimal.Decimal   `json:"order_total"`
	Details       []SellOrderDetail `json:"details"`
	// Optional link to the transfer that staged this order's goods.
	ProductMovementId int       `json:"product_movement_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type SellOrderDetail struct {
	ProductId      int             `json:"product_id"`
	DetailQty      decimal.Decimal `json:"detail_qty"`
	DetailUnitRate decimal.Decimal `json:"detail_unit_rate"`
}

type NewSellOrder struct {
	CustomerId        int                  `json:"customer_id" validate:"required"`
	WarehouseId       int                  `json:"warehouse_id" validate:"required"`
	OrderDate         time.Time            `json:"order_date"`
	CurrentStatus     SellOrderStatus      `json:"current_status" validate:"required"`
	VatPercent        decimal.Decimal      `json:"vat_percent"`
	ProductMovementId int                  `json:"product_movement_id"`
	Details           []NewSellOrderDetail `json:"details" validate:"required,min=1,dive"`
}

type NewSellOrderDetail struct {
	ProductId      int             `json:"product_id" validate:"required"`
	DetailQty      decimal.Decimal `json:"detail_qty"`
	DetailUnitRate decimal.Decimal `json:"detail_unit_rate"`
}

func (so *SellOrder) GetId() int {
	return so.ID
}

func (so *SellOrder) SetId(id int) {
	so.ID = id
}

// Subtotal is the VAT-exclusive sum of line values in the ledger currency.
func (so *SellOrder) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range so.Details {
		subtotal = subtotal.Add(item.DetailQty.Mul(item.DetailUnitRate))
	}
	return subtotal
}

// validate input for both create & update. (id = 0 for create)

func (input *NewSellOrder) validate(bk *Books, id int) error {
	if !input.CurrentStatus.valid() {
		return utils.NewValidationError("invalid sell order status")
	}
	if _, ok := bk.Customers.Get(input.CustomerId); !ok {
		return utils.NewValidationError("customer not found")
	}
	if _, ok := bk.Warehouses.Get(input.WarehouseId); !ok {
		return utils.NewValidationError("warehouse not found")
	}
	if input.VatPercent.IsNegative() {
		return utils.NewValidationError("vat percent cannot be negative")
	}
	if input.ProductMovementId != 0 {
		if _, ok := bk.Movements.Get(input.ProductMovementId); !ok {
			return utils.NewValidationError("product movement not found")
		}
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
	return nil
}

func (input *NewSellOrder) build() *SellOrder {
	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	so := &SellOrder{
		CustomerId:        input.CustomerId,
		WarehouseId:       input.WarehouseId,
		OrderDate:         orderDate,
		CurrentStatus:     input.CurrentStatus,
		VatPercent:        input.VatPercent,
		ProductMovementId: input.ProductMovementId,
	}
	for _, item := range input.Details {
		so.Details = append(so.Details, SellOrderDetail{
			ProductId:      item.ProductId,
			DetailQty:      item.DetailQty,
			DetailUnitRate: item.DetailUnitRate,
		})
	}
	vatFactor := decimal.NewFromInt(1).Add(so.VatPercent.Div(decimal.NewFromInt(100)))
	so.OrderTotal = utils.RoundMoney(so.Subtotal().Mul(vatFactor))
	return so
}

func CreateSellOrder(ctx context.Context, bk *Books, input *NewSellOrder) (*SellOrder, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, 0); err != nil {
		return nil, err
	}

	so := input.build()
	if err := checkSellOrderStock(bk, so, nil); err != nil {
		return nil, err
	}
	so.ID = bk.SellOrders.NextId()
	so.OrderNumber = utils.FormatOrderNumber("SO", so.ID)
	so.CreatedAt = time.Now()
	so.UpdatedAt = so.CreatedAt

	applySellOrderStock(bk, so, nil)
	if err := bk.SellOrders.insert(ctx, so); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return so, nil
}

func UpdateSellOrder(ctx context.Context, bk *Books, id int, input *NewSellOrder) (*SellOrder, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, id); err != nil {
		return nil, err
	}
	old, ok := bk.SellOrders.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	so := input.build()
	so.ID = old.ID
	so.OrderNumber = old.OrderNumber
	so.CreatedAt = old.CreatedAt
	so.UpdatedAt = time.Now()
	if err := checkSellOrderStock(bk, so, old); err != nil {
		return nil, err
	}

	applySellOrderStock(bk, so, old)
	if err := bk.SellOrders.insert(ctx, so); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return so, nil
}

func DeleteSellOrder(ctx context.Context, bk *Books, id int) (*SellOrder, error) {
	so, ok := bk.SellOrders.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	applySellOrderStock(bk, nil, so)
	if _, err := softDeleteRecord(ctx, bk, bk.SellOrders, id); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return so, nil
}

func GetSellOrder(ctx context.Context, bk *Books, id int) (*SellOrder, error) {
	so, ok := bk.SellOrders.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return so, nil
}

func GetSellOrders(ctx context.Context, bk *Books) []*SellOrder {
	return bk.SellOrders.All()
}
