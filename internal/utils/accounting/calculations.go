package accounting

import (
	"fmt"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerScale is the number of decimal places every currency-denominated value
// is rounded to before it is persisted. No unrounded intermediate value may
// leave this package.
const LedgerScale = 4

// Round4 rounds to the ledger scale (half away from zero). Rounding the same
// input always yields a byte-identical decimal, which keeps an unbounded
// sequence of postings deterministic.
func Round4(d decimal.Decimal) decimal.Decimal {
	return d.Round(LedgerScale)
}

// LegAmounts holds the rounded results of computing a trade's two postings.
type LegAmounts struct {
	Quantity      decimal.Decimal // round4(quantity)
	PriceTxn      decimal.Decimal // round4(price)
	TradeValue    decimal.Decimal // round4(quantity * price), settlement currency
	FeesTxn       decimal.Decimal // round4(fees_chf * fx), settlement currency
	CommissionTxn decimal.Decimal // round4(commission_chf * fx), settlement currency

	CashDelta       decimal.Decimal // signed change on the cash account
	InstrumentDelta decimal.Decimal // signed change on the custody holding
}

// ComputeLegAmounts derives the balanced posting amounts for a trade.
//
// A BUY increases the instrument holding by quantity and decreases cash by
// trade value plus costs; a SELL is the inverse, with costs reducing the cash
// proceeds. fxCHFToTxn is the reporting->settlement rate snapshot taken at the
// trade date.
func ComputeLegAmounts(typeCode domain.TradeType, quantity, priceTxn, feesCHF, commissionCHF, fxCHFToTxn decimal.Decimal) (LegAmounts, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return LegAmounts{}, fmt.Errorf("quantity must be positive, got %s", quantity)
	}
	if priceTxn.LessThanOrEqual(decimal.Zero) {
		return LegAmounts{}, fmt.Errorf("price must be positive, got %s", priceTxn)
	}
	if feesCHF.IsNegative() || commissionCHF.IsNegative() {
		return LegAmounts{}, fmt.Errorf("fees and commission must not be negative")
	}

	a := LegAmounts{
		Quantity: Round4(quantity),
		PriceTxn: Round4(priceTxn),
	}
	a.TradeValue = Round4(a.Quantity.Mul(a.PriceTxn))
	a.FeesTxn = Round4(feesCHF.Mul(fxCHFToTxn))
	a.CommissionTxn = Round4(commissionCHF.Mul(fxCHFToTxn))

	switch typeCode {
	case domain.Buy:
		a.CashDelta = Round4(a.TradeValue.Add(a.FeesTxn).Add(a.CommissionTxn)).Neg()
		a.InstrumentDelta = a.Quantity
	case domain.Sell:
		a.CashDelta = Round4(a.TradeValue.Sub(a.FeesTxn).Sub(a.CommissionTxn))
		a.InstrumentDelta = a.Quantity.Neg()
	default:
		return LegAmounts{}, fmt.Errorf("unknown trade type %q", typeCode)
	}

	return a, nil
}
