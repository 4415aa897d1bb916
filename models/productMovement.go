package models

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

// ProductMovement is an inter-warehouse transfer. Unlike orders it is not
// state-machine gated: creating one applies it immediately, deleting one
// reverses it.
type ProductMovement struct {
	ID                int                   `json:"id"`
	MovementNumber    string                `json:"movement_number"`
	SourceWarehouseId int                   `json:"source_warehouse_id"`
	DestWarehouseId   int                   `json:"dest_warehouse_id"`
	Date              time.Time             `json:"date"`
	Items             []ProductMovementItem `json:"items"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

type ProductMovementItem struct {
	ProductId int             `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type NewProductMovement struct {
	SourceWarehouseId int                      `json:"source_warehouse_id" validate:"required"`
	DestWarehouseId   int                      `json:"dest_warehouse_id" validate:"required"`
	Date              time.Time                `json:"date"`
	Items             []NewProductMovementItem `json:"items" validate:"required,min=1,dive"`
}

type NewProductMovementItem struct {
	ProductId int             `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
}

func (m *ProductMovement) GetId() int {
	return m.ID
}

func (m *ProductMovement) SetId(id int) {
	m.ID = id
}

// validate input for both create & update. (id = 0 for create)

func (input *NewProductMovement) validate(bk *Books, id int) error {
	if input.SourceWarehouseId == input.DestWarehouseId {
		return utils.NewValidationError("transfers cannot be made within the same warehouse")
	}
	if _, ok := bk.Warehouses.Get(input.SourceWarehouseId); !ok {
		return utils.NewValidationError("source warehouse not found")
	}
	if _, ok := bk.Warehouses.Get(input.DestWarehouseId); !ok {
		return utils.NewValidationError("destination warehouse not found")
	}
	for _, item := range input.Items {
		if _, ok := bk.Products.Get(item.ProductId); !ok {
			return utils.NewValidationError(fmt.Sprintf("product %d not found", item.ProductId))
		}
		if !item.Quantity.IsPositive() {
			return utils.NewValidationError("transfer quantity must be positive")
		}
	}
	return nil
}

func (input *NewProductMovement) build() *ProductMovement {
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	movement := &ProductMovement{
		SourceWarehouseId: input.SourceWarehouseId,
		DestWarehouseId:   input.DestWarehouseId,
		Date:              date,
	}
	for _, item := range input.Items {
		movement.Items = append(movement.Items, ProductMovementItem{
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
		})
	}
	return movement
}

func CreateProductMovement(ctx context.Context, bk *Books, input *NewProductMovement) (*ProductMovement, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, 0); err != nil {
		return nil, err
	}

	movement := input.build()
	if err := checkMovementStock(bk, movement, nil); err != nil {
		return nil, err
	}
	movement.ID = bk.Movements.NextId()
	movement.MovementNumber = utils.FormatOrderNumber("TR", movement.ID)
	movement.CreatedAt = time.Now()
	movement.UpdatedAt = movement.CreatedAt

	applyMovement(bk, movement)
	if err := bk.Movements.insert(ctx, movement); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return movement, nil
}

// UpdateProductMovement checks the new quantities against availability as it
// would be after the old movement is undone, then reverses the old and
// applies the new. The check runs before either mutation.
func UpdateProductMovement(ctx context.Context, bk *Books, id int, input *NewProductMovement) (*ProductMovement, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, id); err != nil {
		return nil, err
	}
	old, ok := bk.Movements.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	movement := input.build()
	movement.ID = old.ID
	movement.MovementNumber = old.MovementNumber
	movement.CreatedAt = old.CreatedAt
	movement.UpdatedAt = time.Now()
	if err := checkMovementStock(bk, movement, old); err != nil {
		return nil, err
	}

	reverseMovement(bk, old)
	applyMovement(bk, movement)
	if err := bk.Movements.insert(ctx, movement); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return movement, nil
}

func DeleteProductMovement(ctx context.Context, bk *Books, id int) (*ProductMovement, error) {
	movement, ok := bk.Movements.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	for _, so := range bk.SellOrders.All() {
		if so.ProductMovementId == id {
			return nil, utils.NewIntegrityError("movement is referenced by a sell order")
		}
	}

	reverseMovement(bk, movement)
	if _, err := softDeleteRecord(ctx, bk, bk.Movements, id); err != nil {
		return nil, err
	}
	if err := bk.Products.flush(ctx); err != nil {
		return nil, err
	}
	return movement, nil
}

func GetProductMovement(ctx context.Context, bk *Books, id int) (*ProductMovement, error) {
	movement, ok := bk.Movements.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return movement, nil
}

func GetProductMovements(ctx context.Context, bk *Books) []*ProductMovement {
	return bk.Movements.All()
}
