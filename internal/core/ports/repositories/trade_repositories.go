package repositories

import (
	"context"
	"time"

	"github.com/pfmgr/portfolio_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeRepositoryFacade is the ledger store: it persists a Trade header and
// exactly two legs atomically and serves the posting-history queries.
//
// Every mutating method runs inside a single database transaction; on any
// failure the prior state is left intact and the cause is surfaced. Readers
// never observe a trade with fewer than two legs.
type TradeRepositoryFacade interface {
	// SaveTrade inserts the header and both legs in one transaction.
	SaveTrade(ctx context.Context, trade domain.Trade, legs []domain.TradeLeg) error
	// UpdateTrade updates the header and replaces both legs (delete + insert)
	// in one transaction. Returns apperrors.ErrNotFound if the header is missing.
	UpdateTrade(ctx context.Context, trade domain.Trade, legs []domain.TradeLeg) error
	// DeleteTrade removes both legs then the header in one transaction.
	DeleteTrade(ctx context.Context, tradeID string) error

	FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error)
	FindLegsByTradeID(ctx context.Context, tradeID string) ([]domain.TradeLeg, error)

	// ListTradeHistory returns the denormalized trade+legs view, most recent
	// trade date first.
	ListTradeHistory(ctx context.Context, limit int) ([]domain.TradeHistoryEntry, error)

	// SumCashLegDeltas sums CASH-leg deltas for an account up to and including
	// asOf, and reports how many postings contributed.
	SumCashLegDeltas(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, int64, error)
	// SumInstrumentLegDeltas is the INSTRUMENT-leg equivalent, additionally
	// filtered by instrument.
	SumInstrumentLegDeltas(ctx context.Context, accountID, instrumentID string, asOf time.Time) (decimal.Decimal, int64, error)
}
