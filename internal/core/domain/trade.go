package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeType indicates the direction of a trade.
type TradeType string

const (
	Buy  TradeType = "BUY"
	Sell TradeType = "SELL"
)

// Opposite returns the reversed direction (BUY<->SELL).
func (t TradeType) Opposite() TradeType {
	if t == Buy {
		return Sell
	}
	return Buy
}

// Trade is the header row of one economic event. Every persisted Trade owns
// exactly one CASH leg and one INSTRUMENT leg.
type Trade struct {
	TradeID       string          `json:"tradeID"`
	TypeCode      TradeType       `json:"typeCode"`
	TradeDate     time.Time       `json:"tradeDate"` // calendar date, UTC midnight
	InstrumentID  string          `json:"instrumentID"`
	Quantity      decimal.Decimal `json:"quantity"`      // positive, units traded
	PriceTxn      decimal.Decimal `json:"priceTxn"`      // unit price in the instrument's currency
	CurrencyCode  string          `json:"currencyCode"`  // settlement currency, equals instrument currency
	FeesCHF       decimal.Decimal `json:"feesCHF"`       // entered in the reporting currency
	CommissionCHF decimal.Decimal `json:"commissionCHF"` // entered in the reporting currency
	FxCHFToTxn    decimal.Decimal `json:"fxCHFToTxn"`    // reporting->settlement rate snapshot, immutable once written
	Notes         string          `json:"notes"`
	AuditFields
}

// TradeInput is the full set of parameters needed to (re)compute a trade's
// legs. FetchForEdit reconstructs it from a persisted trade and its legs.
type TradeInput struct {
	TypeCode         TradeType
	TradeDate        time.Time
	InstrumentID     string
	Quantity         decimal.Decimal
	PriceTxn         decimal.Decimal
	FeesCHF          decimal.Decimal
	CommissionCHF    decimal.Decimal
	CustodyAccountID string
	CashAccountID    string
	Notes            string
}
