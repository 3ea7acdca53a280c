package models

import "github.com/shopspring/decimal"

// FxRate is the fx_rates table row: the value of 1 unit of CurrencyCode in the
// reporting currency, effective from RateDate onwards.
type FxRate struct {
	FxRateID     string          `db:"fx_rate_id"`
	CurrencyCode string          `db:"currency_code"`
	RateToCHF    decimal.Decimal `db:"rate_to_chf"`
	RateDate     string          `db:"rate_date"` // YYYY-MM-DD
	AuditFields
}
