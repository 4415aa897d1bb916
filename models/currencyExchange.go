package models

import (
	"context"
	"strings"

	"bitbucket.org/mmdatafocus/anbar_erp/config"
	"bitbucket.org/mmdatafocus/anbar_erp/utils"
	"github.com/shopspring/decimal"
)

const DefaultLedgerCurrency = "AZN"

// Settings carries the ledger currency and the manually configured rate
// table. Rates convert one unit of a foreign currency into the ledger
// currency; the ledger currency itself has implicit rate 1.
type Settings struct {
	LedgerCurrency string                     `json:"ledger_currency"`
	Rates          map[string]decimal.Decimal `json:"rates"`
}

func (s *Settings) RateFor(currency string) (decimal.Decimal, bool) {
	if currency == s.LedgerCurrency {
		return decimal.NewFromInt(1), true
	}
	rate, ok := s.Rates[currency]
	if !ok || !rate.IsPositive() {
		return decimal.Decimal{}, false
	}
	return rate, true
}

// ToLedger converts an amount into the ledger currency. manualRate, when
// positive, wins over the rate table (line items bound to an order-level
// exchange rate). A missing rate falls back to 1 — permissive on purpose for
// this single-tenant tool; order validation rejects missing rates before a
// new document is persisted.
func (bk *Books) ToLedger(amount decimal.Decimal, currency string, manualRate decimal.Decimal) decimal.Decimal {
	if currency == bk.Settings.LedgerCurrency {
		return amount
	}
	if manualRate.IsPositive() {
		return amount.Mul(manualRate)
	}
	rate, ok := bk.Settings.RateFor(currency)
	if !ok {
		config.LogWarn(bk.logger, "currencyExchange.go", "ToLedger",
			"missing exchange rate, defaulting to 1", currency)
		return amount
	}
	return amount.Mul(rate)
}

func UpdateExchangeRate(ctx context.Context, bk *Books, currency string, rate decimal.Decimal) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return utils.NewValidationError("currency code is required")
	}
	if currency == bk.Settings.LedgerCurrency {
		return utils.NewValidationError("ledger currency rate is fixed at 1")
	}
	if !rate.IsPositive() {
		return utils.NewValidationError("exchange rate must be positive")
	}
	bk.Settings.Rates[currency] = rate
	return bk.SaveSettings(ctx, bk.Settings)
}

// requireRate is the pre-persist check every order save runs for each
// non-ledger currency it touches, unless a manual order rate covers it.
func requireRate(bk *Books, currency string, manualRate decimal.Decimal) error {
	if currency == bk.Settings.LedgerCurrency {
		return nil
	}
	if manualRate.IsPositive() {
		return nil
	}
	if _, ok := bk.Settings.RateFor(currency); !ok {
		return utils.NewValidationError("exchange rate is not configured for " + currency)
	}
	return nil
}
