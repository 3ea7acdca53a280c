package dto

import (
	"time"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// TradeRequest carries the caller's trade intent for both create and update.
// Fees and commission are always entered in the reporting currency.
type TradeRequest struct {
	TypeCode         string          `json:"typeCode" binding:"required,oneof=BUY SELL"`
	TradeDate        string          `json:"tradeDate" binding:"required,datetime=2006-01-02"`
	InstrumentID     string          `json:"instrumentID" binding:"required"`
	Quantity         decimal.Decimal `json:"quantity" binding:"dgt0"`
	PriceTxn         decimal.Decimal `json:"priceTxn" binding:"dgt0"`
	FeesCHF          decimal.Decimal `json:"feesCHF" binding:"dgte0"`
	CommissionCHF    decimal.Decimal `json:"commissionCHF" binding:"dgte0"`
	CustodyAccountID string          `json:"custodyAccountID" binding:"required"`
	CashAccountID    string          `json:"cashAccountID" binding:"required"`
	Notes            string          `json:"notes"`
}

// ToTradeInput converts the request into domain input parameters.
func (r TradeRequest) ToTradeInput() (domain.TradeInput, error) {
	tradeDate, err := time.ParseInLocation(dateLayout, r.TradeDate, time.UTC)
	if err != nil {
		return domain.TradeInput{}, err
	}
	return domain.TradeInput{
		TypeCode:         domain.TradeType(r.TypeCode),
		TradeDate:        tradeDate,
		InstrumentID:     r.InstrumentID,
		Quantity:         r.Quantity,
		PriceTxn:         r.PriceTxn,
		FeesCHF:          r.FeesCHF,
		CommissionCHF:    r.CommissionCHF,
		CustodyAccountID: r.CustodyAccountID,
		CashAccountID:    r.CashAccountID,
		Notes:            r.Notes,
	}, nil
}

// TradeResponse is the trade header returned from mutations.
type TradeResponse struct {
	TradeID       string          `json:"tradeID"`
	TypeCode      string          `json:"typeCode"`
	TradeDate     string          `json:"tradeDate"`
	InstrumentID  string          `json:"instrumentID"`
	Quantity      decimal.Decimal `json:"quantity"`
	PriceTxn      decimal.Decimal `json:"priceTxn"`
	CurrencyCode  string          `json:"currencyCode"`
	FeesCHF       decimal.Decimal `json:"feesCHF"`
	CommissionCHF decimal.Decimal `json:"commissionCHF"`
	FxCHFToTxn    decimal.Decimal `json:"fxCHFToTxn"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToTradeResponse converts a domain Trade to its response DTO.
func ToTradeResponse(d *domain.Trade) TradeResponse {
	return TradeResponse{
		TradeID:       d.TradeID,
		TypeCode:      string(d.TypeCode),
		TradeDate:     d.TradeDate.Format(dateLayout),
		InstrumentID:  d.InstrumentID,
		Quantity:      d.Quantity,
		PriceTxn:      d.PriceTxn,
		CurrencyCode:  d.CurrencyCode,
		FeesCHF:       d.FeesCHF,
		CommissionCHF: d.CommissionCHF,
		FxCHFToTxn:    d.FxCHFToTxn,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// EditTradeResponse is the reconstructed input form served to the edit screen.
type EditTradeResponse struct {
	TypeCode         string          `json:"typeCode"`
	TradeDate        string          `json:"tradeDate"`
	InstrumentID     string          `json:"instrumentID"`
	Quantity         decimal.Decimal `json:"quantity"`
	PriceTxn         decimal.Decimal `json:"priceTxn"`
	FeesCHF          decimal.Decimal `json:"feesCHF"`
	CommissionCHF    decimal.Decimal `json:"commissionCHF"`
	CustodyAccountID string          `json:"custodyAccountID"`
	CashAccountID    string          `json:"cashAccountID"`
	Notes            string          `json:"notes,omitempty"`
}

// ToEditTradeResponse converts reconstructed input parameters to the edit DTO.
func ToEditTradeResponse(in *domain.TradeInput) EditTradeResponse {
	return EditTradeResponse{
		TypeCode:         string(in.TypeCode),
		TradeDate:        in.TradeDate.Format(dateLayout),
		InstrumentID:     in.InstrumentID,
		Quantity:         in.Quantity,
		PriceTxn:         in.PriceTxn,
		FeesCHF:          in.FeesCHF,
		CommissionCHF:    in.CommissionCHF,
		CustodyAccountID: in.CustodyAccountID,
		CashAccountID:    in.CashAccountID,
		Notes:            in.Notes,
	}
}

// TradeHistoryEntryResponse is one denormalized row of the history screen.
type TradeHistoryEntryResponse struct {
	TradeID            string          `json:"tradeID"`
	TypeCode           string          `json:"typeCode"`
	TradeDate          string          `json:"tradeDate"`
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
	Notes              string          `json:"notes,omitempty"`
}

// ListTradesResponse wraps the history listing.
type ListTradesResponse struct {
	Trades []TradeHistoryEntryResponse `json:"trades"`
}

// ToListTradesResponse converts domain history entries to the listing DTO.
func ToListTradesResponse(entries []domain.TradeHistoryEntry) ListTradesResponse {
	out := make([]TradeHistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = TradeHistoryEntryResponse{
			TradeID:            e.TradeID,
			TypeCode:           string(e.TypeCode),
			TradeDate:          e.TradeDate.Format(dateLayout),
			InstrumentID:       e.InstrumentID,
			InstrumentName:     e.InstrumentName,
			CurrencyCode:       e.CurrencyCode,
			Quantity:           e.Quantity,
			PriceTxn:           e.PriceTxn,
			FeesCHF:            e.FeesCHF,
			CommissionCHF:      e.CommissionCHF,
			CustodyAccountName: e.CustodyAccountName,
			CashAccountName:    e.CashAccountName,
			CashDelta:          e.CashDelta,
			InstrumentDelta:    e.InstrumentDelta,
			Notes:              e.Notes,
		}
	}
	return ListTradesResponse{Trades: out}
}
