package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

type Warehouse struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Type      WarehouseType `json:"type"`
	Address   string        `json:"address"`
	IsActive  *bool         `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type NewWarehouse struct {
	Name    string        `json:"name" validate:"required"`
	Type    WarehouseType `json:"type" validate:"required"`
	Address string        `json:"address"`
}

func (w *Warehouse) GetId() int {
	return w.ID
}

func (w *Warehouse) SetId(id int) {
	w.ID = id
}

// validate input for both create & update. (id = 0 for create)

func (input *NewWarehouse) validate(bk *Books, id int) error {
	if !input.Type.valid() {
		return utils.NewValidationError("invalid warehouse type")
	}
	name := strings.TrimSpace(input.Name)
	for _, other := range bk.Warehouses.All() {
		if other.ID != id && strings.EqualFold(other.Name, name) {
			return utils.NewValidationError("warehouse name already exists")
		}
		// At most one Main warehouse.
		if other.ID != id && input.Type == WarehouseTypeMain && other.Type == WarehouseTypeMain {
			return utils.NewValidationError("a main warehouse already exists")
		}
	}
	return nil
}

func CreateWarehouse(ctx context.Context, bk *Books, input *NewWarehouse) (*Warehouse, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, 0); err != nil {
		return nil, err
	}

	warehouse := &Warehouse{
		Name:      strings.TrimSpace(input.Name),
		Type:      input.Type,
		Address:   input.Address,
		IsActive:  utils.NewTrue(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return bk.Warehouses.Save(ctx, warehouse)
}

func UpdateWarehouse(ctx context.Context, bk *Books, id int, input *NewWarehouse) (*Warehouse, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, id); err != nil {
		return nil, err
	}
	warehouse, ok := bk.Warehouses.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	if warehouse.Type == WarehouseTypeMain && input.Type != WarehouseTypeMain {
		return nil, utils.NewValidationError("the main warehouse cannot be demoted")
	}

	warehouse.Name = strings.TrimSpace(input.Name)
	warehouse.Type = input.Type
	warehouse.Address = input.Address
	warehouse.UpdatedAt = time.Now()
	return bk.Warehouses.Save(ctx, warehouse)
}

func DeleteWarehouse(ctx context.Context, bk *Books, id int) (*Warehouse, error) {
	warehouse, ok := bk.Warehouses.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	if warehouse.Type == WarehouseTypeMain {
		return nil, utils.NewIntegrityError("the main warehouse cannot be deleted")
	}
	for _, product := range bk.Products.All() {
		if product.Stock[id].IsPositive() {
			return nil, utils.NewIntegrityError("warehouse still holds stock")
		}
	}
	if warehouseReferenced(bk, id) {
		return nil, utils.NewIntegrityError("warehouse is referenced by orders or movements")
	}
	if _, err := softDeleteRecord(ctx, bk, bk.Warehouses, id); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func GetWarehouse(ctx context.Context, bk *Books, id int) (*Warehouse, error) {
	warehouse, ok := bk.Warehouses.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return warehouse, nil
}

func GetWarehouses(ctx context.Context, bk *Books) []*Warehouse {
	return bk.Warehouses.All()
}

func ToggleActiveWarehouse(ctx context.Context, bk *Books, id int, isActive bool) (*Warehouse, error) {
	warehouse, ok := bk.Warehouses.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	if !isActive && warehouse.Type == WarehouseTypeMain {
		return nil, utils.NewValidationError("the main warehouse cannot be deactivated")
	}
	if isActive {
		warehouse.IsActive = utils.NewTrue()
	} else {
		warehouse.IsActive = utils.NewFalse()
	}
	warehouse.UpdatedAt = time.Now()
	return bk.Warehouses.Save(ctx, warehouse)
}

func warehouseReferenced(bk *Books, warehouseId int) bool {
	for _, po := range bk.PurchaseOrders.All() {
		if po.WarehouseId == warehouseId {
			return true
		}
	}
	for _, so := range bk.SellOrders.All() {
		if so.WarehouseId == warehouseId {
			return true
		}
	}
	for _, movement := range bk.Movements.All() {
		if movement.SourceWarehouseId == warehouseId || movement.DestWarehouseId == warehouseId {
			return true
		}
	}
	return false
}
