package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

type Supplier struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	IsActive  *bool     `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewSupplier struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

func (s *Supplier) GetId() int {
	return s.ID
}

func (s *Supplier) SetId(id int) {
	s.ID = id
}

func (input *NewSupplier) validate(bk *Books, id int) error {
	name := strings.TrimSpace(input.Name)
	for _, other := range bk.Suppliers.All() {
		if other.ID != id && strings.EqualFold(other.Name, name) {
			return utils.NewValidationError("supplier name already exists")
		}
	}
	return nil
}

func CreateSupplier(ctx context.Context, bk *Books, input *NewSupplier) (*Supplier, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, 0); err != nil {
		return nil, err
	}

	supplier := &Supplier{
		Name:      strings.TrimSpace(input.Name),
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		IsActive:  utils.NewTrue(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return bk.Suppliers.Save(ctx, supplier)
}

func UpdateSupplier(ctx context.Context, bk *Books, id int, input *NewSupplier) (*Supplier, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, id); err != nil {
		return nil, err
	}
	supplier, ok := bk.Suppliers.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	supplier.Name = strings.TrimSpace(input.Name)
	supplier.Phone = input.Phone
	supplier.Email = input.Email
	supplier.Address = input.Address
	supplier.UpdatedAt = time.Now()
	return bk.Suppliers.Save(ctx, supplier)
}

func DeleteSupplier(ctx context.Context, bk *Books, id int) (*Supplier, error) {
	supplier, ok := bk.Suppliers.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	for _, po := range bk.PurchaseOrders.All() {
		if po.SupplierId == id {
			return nil, utils.NewIntegrityError("supplier is referenced by purchase orders")
		}
	}
	if _, err := softDeleteRecord(ctx, bk, bk.Suppliers, id); err != nil {
		return nil, err
	}
	return supplier, nil
}

func GetSupplier(ctx context.Context, bk *Books, id int) (*Supplier, error) {
	supplier, ok := bk.Suppliers.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return supplier, nil
}

func GetSuppliers(ctx context.Context, bk *Books) []*Supplier {
	return bk.Suppliers.All()
}

func ToggleActiveSupplier(ctx context.Context, bk *Books, id int, isActive bool) (*Supplier, error) {
	supplier, ok := bk.Suppliers.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	if isActive {
		supplier.IsActive = utils.NewTrue()
	} else {
		supplier.IsActive = utils.NewFalse()
	}
	supplier.UpdatedAt = time.Now()
	return bk.Suppliers.Save(ctx, supplier)
}
