package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSvcFacade derives point-in-time balances from posting history.
type BalanceSvcFacade interface {
	// CashBalance sums CASH-leg deltas for the account up to asOf. When no
	// postings exist it falls back to the external snapshot balance.
	CashBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)
	// InstrumentHolding is the INSTRUMENT-leg equivalent for one
	// account/instrument pairing.
	InstrumentHolding(ctx context.Context, accountID, instrumentID string, asOf time.Time) (decimal.Decimal, error)
}
