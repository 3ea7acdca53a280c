package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegTypeCode is the persisted leg type.
type LegTypeCode string

const (
	CashLeg       LegTypeCode = "CASH"
	InstrumentLeg LegTypeCode = "INSTRUMENT"
)

// TradeLeg is the trade_legs table row. (trade_id, leg_type) is unique.
type TradeLeg struct {
	LegID         string          `db:"leg_id"`
	TradeID       string          `db:"trade_id"`
	LegType       LegTypeCode     `db:"leg_type"`
	AccountID     string          `db:"account_id"`
	InstrumentID  string          `db:"instrument_id"`
	DeltaQuantity decimal.Decimal `db:"delta_quantity"`
	CreatedAt     time.Time       `db:"created_at"`
}
