package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegacyTransaction is one row of the pre-ledger single-entry transactions
// table. It only exists as input to the one-time migration into Trade/TradeLeg.
type LegacyTransaction struct {
	TxnID            string
	TypeCode         TradeType
	TxnDate          time.Time
	InstrumentID     string
	Quantity         decimal.Decimal
	PriceTxn         decimal.Decimal
	FeesCHF          decimal.Decimal
	CommissionCHF    decimal.Decimal
	CashAccountID    string
	CustodyAccountID string
	Notes            string
}
