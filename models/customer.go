package models

import (
	"context"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	IsActive  *bool     `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewCustomer struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

func (c *Customer) GetId() int {
	return c.ID
}

func (c *Customer) SetId(id int) {
	c.ID = id
}

func (input *NewCustomer) validate(bk *Books, id int) error {
	name := strings.TrimSpace(input.Name)
	for _, other := range bk.Customers.All() {
		if other.ID != id && strings.EqualFold(other.Name, name) {
			return utils.NewValidationError("customer name already exists")
		}
	}
	return nil
}

func CreateCustomer(ctx context.Context, bk *Books, input *NewCustomer) (*Customer, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, 0); err != nil {
		return nil, err
	}

	customer := &Customer{
		Name:      strings.TrimSpace(input.Name),
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		IsActive:  utils.NewTrue(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return bk.Customers.Save(ctx, customer)
}

func UpdateCustomer(ctx context.Context, bk *Books, id int, input *NewCustomer) (*Customer, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, id); err != nil {
		return nil, err
	}
	customer, ok := bk.Customers.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	customer.Name = strings.TrimSpace(input.Name)
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.Address = input.Address
	customer.UpdatedAt = time.Now()
	return bk.Customers.Save(ctx, customer)
}

func DeleteCustomer(ctx context.Context, bk *Books, id int) (*Customer, error) {
	customer, ok := bk.Customers.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	for _, so := range bk.SellOrders.All() {
		if so.CustomerId == id {
			return nil, utils.NewIntegrityError("customer is referenced by sell orders")
		}
	}
	if _, err := softDeleteRecord(ctx, bk, bk.Customers, id); err != nil {
		return nil, err
	}
	return customer, nil
}

func GetCustomer(ctx context.Context, bk *Books, id int) (*Customer, error) {
	customer, ok := bk.Customers.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return customer, nil
}

func GetCustomers(ctx context.Context, bk *Books) []*Customer {
	return bk.Customers.All()
}

func ToggleActiveCustomer(ctx context.Context, bk *Books, id int, isActive bool) (*Customer, error) {
	customer, ok := bk.Customers.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	if isActive {
		customer.IsActive = utils.NewTrue()
	} else {
		customer.IsActive = utils.NewFalse()
	}
	customer.UpdatedAt = time.Now()
	return bk.Customers.Save(ctx, customer)
}
