package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegType indicates which side of a trade a leg records.
type LegType string

const (
	CashLeg       LegType = "CASH"
	InstrumentLeg LegType = "INSTRUMENT"
)

// TradeLeg is one posting of a trade: the signed change applied to one
// account/instrument pairing's running balance. A trade owns at most one leg
// of each type.
type TradeLeg struct {
	LegID         string          `json:"legID"`
	TradeID       string          `json:"tradeID"`
	LegType       LegType         `json:"legType"`
	AccountID     string          `json:"accountID"`
	InstrumentID  string          `json:"instrumentID"` // synthetic cash instrument for CASH legs
	DeltaQuantity decimal.Decimal `json:"deltaQuantity"`
	CreatedAt     time.Time       `json:"createdAt"`
}
