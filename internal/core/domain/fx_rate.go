package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate is one historical snapshot: 1 unit of CurrencyCode = RateToCHF units
// of the reporting currency, effective from RateDate.
type FxRate struct {
	FxRateID     string          `json:"fxRateID"`
	CurrencyCode string          `json:"currencyCode"`
	RateToCHF    decimal.Decimal `json:"rateToCHF"`
	RateDate     time.Time       `json:"rateDate"`
	AuditFields
}
