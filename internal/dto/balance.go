package dto

import "github.com/shopspring/decimal"

// BalanceResponse is a derived point-in-time balance.
type BalanceResponse struct {
	AccountID    string          `json:"accountID"`
	InstrumentID string          `json:"instrumentID,omitempty"`
	AsOf         string          `json:"asOf"`
	Balance      decimal.Decimal `json:"balance"`
}
