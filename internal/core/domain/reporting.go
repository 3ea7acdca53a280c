package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeHistoryEntry is the denormalized row served to history screens:
// the trade header joined with both legs and the account display names.
type TradeHistoryEntry struct {
	TradeID            string          `json:"tradeID"`
	TypeCode           TradeType       `json:"typeCode"`
	TradeDate          time.Time       `json:"tradeDate"`
	InstrumentID       string          `json:"instrumentID"`
	InstrumentName     string          `json:"instrumentName"`
	CurrencyCode       string          `json:"currencyCode"`
	Quantity           decimal.Decimal `json:"quantity"`
	PriceTxn           decimal.Decimal `json:"priceTxn"`
	FeesCHF            decimal.Decimal `json:"feesCHF"`
	CommissionCHF      decimal.Decimal `json:"commissionCHF"`
	CustodyAccountName string          `json:"custodyAccountName"`
	CashAccountName    string          `json:"cashAccountName"`
	CashDelta          decimal.Decimal `json:"cashDelta"`
	InstrumentDelta    decimal.Decimal `json:"instrumentDelta"`
	Notes              string          `json:"notes"`
}
