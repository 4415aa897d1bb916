package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

// ValidateStruct runs the tag-level checks on an input struct and folds the
// result into a single ValidationError.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, ve := range validationErrors {
		return NewValidationError(fmt.Sprintf("%s failed on %s", ve.Field(), ve.Tag()))
	}
	return err
}

func ProcessValidationErrors(err error) map[string]string {
	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)
	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}
	return errorResponse
}

// FormatOrderNumber renders the human-readable document number for an
// allocated id, e.g. PO-00012. Ids stay authoritative.
func FormatOrderNumber(prefix string, id int) string {
	return fmt.Sprintf("%s-%05d", prefix, id)
}

// RoundCost rounds per-unit costs to 4 places.
func RoundCost(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// RoundMoney rounds ledger-currency totals to 2 places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
