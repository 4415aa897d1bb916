package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

// Payment is read-only with respect to the inventory core; only the finance
// summaries consume it. AmountLedger is derived at save time so reporting
// never re-converts.
type Payment struct {
	ID           int             `json:"id"`
	Type         PaymentType     `json:"type"`
	OrderId      int             `json:"order_id"`
	Category     PaymentCategory `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	AmountLedger decimal.Decimal `json:"amount_ledger"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type NewPayment struct {
	Type     PaymentType     `json:"type" validate:"required"`
	OrderId  int             `json:"order_id"`
	Category PaymentCategory `json:"category" validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"required"`
	Date     time.Time       `json:"date"`
	Notes    string          `json:"notes"`
}

func (p *Payment) GetId() int {
	return p.ID
}

func (p *Payment) SetId(id int) {
	p.ID = id
}

// validate input for both create & update. (id = 0 for create)

func (input *NewPayment) validate(bk *Books, id int) error {
	if !input.Type.valid() {
		return utils.NewValidationError("invalid payment type")
	}
	if !input.Category.valid() {
		return utils.NewValidationError("invalid payment category")
	}
	if !input.Amount.IsPositive() {
		return utils.NewValidationError("payment amount must be positive")
	}
	if err := requireRate(bk, input.Currency, decimal.Zero); err != nil {
		return err
	}
	// OrderId 0 is an unlinked/manual payment.
	if input.OrderId != 0 {
		switch input.Type {
		case PaymentTypeOutgoing:
			if _, ok := bk.PurchaseOrders.Get(input.OrderId); !ok {
				return utils.NewValidationError("purchase order not found")
			}
		case PaymentTypeIncoming:
			if _, ok := bk.SellOrders.Get(input.OrderId); !ok {
				return utils.NewValidationError("sell order not found")
			}
		}
	}
	return nil
}

func (input *NewPayment) build(bk *Books) *Payment {
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	return &Payment{
		Type:         input.Type,
		OrderId:      input.OrderId,
		Category:     input.Category,
		Amount:       input.Amount,
		Currency:     input.Currency,
		AmountLedger: utils.RoundMoney(bk.ToLedger(input.Amount, input.Currency, decimal.Zero)),
		Date:         date,
		Notes:        input.Notes,
	}
}

func CreatePayment(ctx context.Context, bk *Books, input *NewPayment) (*Payment, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, 0); err != nil {
		return nil, err
	}

	payment := input.build(bk)
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	return bk.Payments.Save(ctx, payment)
}

func UpdatePayment(ctx context.Context, bk *Books, id int, input *NewPayment) (*Payment, error) {
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if err := input.validate(bk, id); err != nil {
		return nil, err
	}
	old, ok := bk.Payments.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}

	payment := input.build(bk)
	payment.ID = old.ID
	payment.CreatedAt = old.CreatedAt
	payment.UpdatedAt = time.Now()
	return bk.Payments.Save(ctx, payment)
}

func DeletePayment(ctx context.Context, bk *Books, id int) (*Payment, error) {
	payment, ok := bk.Payments.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	if _, err := softDeleteRecord(ctx, bk, bk.Payments, id); err != nil {
		return nil, err
	}
	return payment, nil
}

func GetPayment(ctx context.Context, bk *Books, id int) (*Payment, error) {
	payment, ok := bk.Payments.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	return payment, nil
}

func GetPayments(ctx context.Context, bk *Books) []*Payment {
	return bk.Payments.All()
}
