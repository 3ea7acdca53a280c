package models

import "github.com/shopspring/decimal"

// TradeTypeCode is the persisted trade direction.
type TradeTypeCode string

const (
	Buy  TradeTypeCode = "BUY"
	Sell TradeTypeCode = "SELL"
)

// Trade is the trades table row. All currency-denominated columns are rounded
// to 4 decimal places before they reach this struct.
type Trade struct {
	TradeID       string          `db:"trade_id"`
	TypeCode      TradeTypeCode   `db:"type_code"`
	TradeDate     string          `db:"trade_date"` // YYYY-MM-DD
	InstrumentID  string          `db:"instrument_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	PriceTxn      decimal.Decimal `db:"price_txn"`
	CurrencyCode  string          `db:"currency_code"`
	FeesCHF       decimal.Decimal `db:"fees_chf"`
	CommissionCHF decimal.Decimal `db:"commission_chf"`
	FxCHFToTxn    decimal.Decimal `db:"fx_chf_to_txn"`
	Notes         string          `db:"notes"`
	AuditFields
}
