package models

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

type Product struct {
	ID          int    `json:"id"`
	Sku         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// Stock maps warehouse id to on-hand quantity. Only the stock ledger
	// writes here; forms never touch it after creation.
	Stock             map[int]decimal.Decimal `json:"stock"`
	MinStock          decimal.Decimal         `json:"min_stock"`
	AverageLandedCost decimal.Decimal         `json:"average_landed_cost"`
	IsActive          *bool                   `json:"is_active"`
	CreatedAt         time.Time               `json:"created_at"`
	UpdatedAt         time.Time               `json:"updated_at"`
}

type NewProduct struct {
	Sku         string          `json:"sku" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

func (p *Product) GetId() int {
	return p.ID
}

func (p *Product) SetId(id int) {
	p.ID = id
}

// TotalStock is derived, never stored as authoritative.
func (p *Product) TotalStock() decimal.Decimal {
	total := decimal.Zero
	for _, qty := range p.Stock {
		total = total.Add(qty)
	}
	return total
}

func (p *Product) IsBelowMinStock() bool {
	return p.MinStock.IsPositive() && p.TotalStock().LessThan(p.MinStock)
}

// validate input for both create & update. (id = 0 for create)

func (input *NewProduct) validate(bk *Books, id int) error {
	sku := strings.TrimSpace(input.Sku)
	for _, other := range bk.Products.All() {
		if other.ID != id && strings.EqualFold(other.Sku, sku) {
			return utils.NewValidationError("sku already exists")
		}
	}
	if input.MinStock.IsNegative() {
		return utils.NewValidationError("minimum stock cannot be negative")
	}
	return nil
}

func CreateProduct(ctx context.Context, bk *Books, input *NewProduct) (*Product, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, 0); err != nil {
		return nil, err
	}

	product := &Product{
		Sku:               strings.TrimSpace(input.Sku),
		Name:              input.Name,
		Description:       input.Description,
		Stock:             map[int]decimal.Decimal{},
		MinStock:          input.MinStock,
		AverageLandedCost: decimal.Zero,
		IsActive:          utils.NewTrue(),
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	return bk.Products.Save(ctx, product)
}

func UpdateProduct(ctx context.Context, bk *Books, id int, input *NewProduct) (*Product, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, id); err != nil {
		return nil, err
	}
	product, ok := bk.Products.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	// Stock and average cost stay untouched: they belong to the ledgers.
	product.Sku = strings.TrimSpace(input.Sku)
	product.Name = input.Name
	product.Description = input.Description
	product.MinStock = input.MinStock
	product.UpdatedAt = time.Now()
	return bk.Products.Save(ctx, product)
}

func DeleteProduct(ctx context.Context, bk *Books, id int) (*Product, error) {
	product, ok := bk.Products.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	if product.TotalStock().IsPositive() {
		return nil, utils.NewIntegrityError("product still has stock on hand")
	}
	if productReferenced(bk, id) {
		return nil, utils.NewIntegrityError("product is referenced by orders or movements")
	}
	if _, err := softDeleteRecord(ctx, bk, bk.Products, id); err != nil {
		return nil, err
	}
	return product, nil
}

func GetProduct(ctx context.Context, bk *Books, id int) (*Product, error) {
	product, ok := bk.Products.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return product, nil
}

func GetProducts(ctx context.Context, bk *Books) []*Product {
	return bk.Products.All()
}

func ToggleActiveProduct(ctx context.Context, bk *Books, id int, isActive bool) (*Product, error) {
	product, ok := bk.Products.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	if isActive {
		product.IsActive = utils.NewTrue()
	} else {
		product.IsActive = utils.NewFalse()
	}
	product.UpdatedAt = time.Now()
	return bk.Products.Save(ctx, product)
}

func productReferenced(bk *Books, productId int) bool {
	for _, po := range bk.PurchaseOrders.All() {
		for _, item := range po.Details {
			if item.ProductId == productId {
				return true
			}
		}
	}
	for _, so := range bk.SellOrders.All() {
		for _, item := range so.Details {
			if item.ProductId == productId {
				return true
			}
		}
	}
	for _, movement := range bk.Movements.All() {
		for _, item := range movement.Items {
			if item.ProductId == productId {
				return true
			}
		}
	}
	return false
}
